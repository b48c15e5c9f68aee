package summary

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/report"
	"github.com/abhisek/skillbridge/internal/router"
	"github.com/abhisek/skillbridge/internal/screen"
	"github.com/abhisek/skillbridge/internal/ui/components"
	"github.com/abhisek/skillbridge/internal/ui/layout"
	"github.com/abhisek/skillbridge/internal/ui/theme"
)

// SummaryScreen displays the end-of-session summary.
type SummaryScreen struct {
	summary report.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary report.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n\n")

	if sum.TotalAttempts == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No answers were recorded this session."))
		return b.String()
	}

	statsLine := fmt.Sprintf("Questions: %d        Average: %.0f        Excellent: %d",
		sum.TotalAttempts, sum.AverageTotal, sum.ExcellentCount)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n")

	if sum.Improvement != nil {
		imp := *sum.Improvement
		sign := "+"
		style := lipgloss.NewStyle().Foreground(theme.Success)
		if imp < 0 {
			sign = ""
			style = lipgloss.NewStyle().Foreground(theme.Error)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(fmt.Sprintf("%s%d from your first answer to your last", sign, imp))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	// Dimension averages.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Dimensions")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	barWidth := min(width-20, 56)
	for _, name := range sortedKeys(sum.DimensionAverages) {
		avg := sum.DimensionAverages[name]
		label := fmt.Sprintf("%-14s %3.0f", strings.ReplaceAll(name, "_", " "), avg)
		bar := components.NewProgressBar(label, avg/100, false, barWidth)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	if weakest := sum.Weakest(); weakest != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(
				fmt.Sprintf("Focus next on %s.", strings.ReplaceAll(weakest, "_", " ")))))
		b.WriteString("\n")
	}

	// Per-category results.
	if len(sum.ByCategory) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Categories")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		cats := make([]string, 0, len(sum.ByCategory))
		for c := range sum.ByCategory {
			cats = append(cats, string(c))
		}
		sort.Strings(cats)
		for _, c := range cats {
			st := sum.ByCategory[questionbank.Category(c)]
			line := fmt.Sprintf("  %-22s %d answered    avg %.0f", c, st.Attempts, st.AverageTotal)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
			b.WriteString("\n")
		}
	}

	if sum.ClarificationCount > 0 || sum.DegradedCount > 0 {
		b.WriteString("\n")
		note := fmt.Sprintf("Follow-ups: %d    Degraded coaching: %d",
			sum.ClarificationCount, sum.DegradedCount)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(note)))
		b.WriteString("\n")
	}

	return b.String()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
