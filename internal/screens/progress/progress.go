package progress

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillbridge/internal/report"
	"github.com/abhisek/skillbridge/internal/router"
	"github.com/abhisek/skillbridge/internal/screen"
	"github.com/abhisek/skillbridge/internal/session"
	"github.com/abhisek/skillbridge/internal/store"
	"github.com/abhisek/skillbridge/internal/ui/components"
	"github.com/abhisek/skillbridge/internal/ui/layout"
	"github.com/abhisek/skillbridge/internal/ui/theme"
)

// sessionRow is one past session with its own aggregate.
type sessionRow struct {
	SessionID string
	Attempts  []session.Attempt
	Summary   report.Summary
}

type progressLoadedMsg struct {
	Lifetime report.Summary
	Sessions []sessionRow
	Err      error
}

// ProgressScreen displays the lifetime report and past sessions.
type ProgressScreen struct {
	attemptRepo store.AttemptRepo
	lifetime    report.Summary
	sessions    []sessionRow
	selected    int
	expanded    map[int]bool
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a new ProgressScreen.
func New(attemptRepo store.AttemptRepo) *ProgressScreen {
	return &ProgressScreen{
		attemptRepo: attemptRepo,
		expanded:    make(map[int]bool),
	}
}

// NewError creates a ProgressScreen that only shows an error. Used when
// a screen transition fails before its target screen can be built.
func NewError(err error) *ProgressScreen {
	return &ProgressScreen{
		loaded: true,
		errMsg: err.Error(),
	}
}

func (s *ProgressScreen) Init() tea.Cmd {
	if s.attemptRepo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()

		all, err := s.attemptRepo.Recent(ctx, 0)
		if err != nil {
			return progressLoadedMsg{Err: err}
		}

		ids, err := s.attemptRepo.SessionIDs(ctx)
		if err != nil {
			return progressLoadedMsg{Lifetime: report.Build(all)}
		}

		const maxSessions = 20
		if len(ids) > maxSessions {
			ids = ids[:maxSessions]
		}

		rows := make([]sessionRow, 0, len(ids))
		for _, id := range ids {
			attempts, err := s.attemptRepo.BySession(ctx, id)
			if err != nil || len(attempts) == 0 {
				continue
			}
			rows = append(rows, sessionRow{
				SessionID: id,
				Attempts:  attempts,
				Summary:   report.Build(attempts),
			})
		}

		return progressLoadedMsg{Lifetime: report.Build(all), Sessions: rows}
	}
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.lifetime = msg.Lifetime
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}
	if s.lifetime.TotalAttempts == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No answers yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	statsLine := fmt.Sprintf("Answers: %d    Average: %.0f    Excellent: %d    Follow-ups: %d",
		s.lifetime.TotalAttempts, s.lifetime.AverageTotal,
		s.lifetime.ExcellentCount, s.lifetime.ClarificationCount)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(statsLine)))
	b.WriteString("\n\n")

	barWidth := min(width-20, 56)
	for _, name := range sortedKeys(s.lifetime.DimensionAverages) {
		avg := s.lifetime.DimensionAverages[name]
		label := fmt.Sprintf("%-14s %3.0f", strings.ReplaceAll(name, "_", " "), avg)
		bar := components.NewProgressBar(label, avg/100, false, barWidth)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	if weakest := s.lifetime.Weakest(); weakest != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(
				fmt.Sprintf("Weakest dimension: %s", strings.ReplaceAll(weakest, "_", " ")))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Sessions")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for i, row := range s.sessions {
		dateStr := row.Attempts[0].Timestamp.Format("Jan 02, 2006")

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %d questions  avg %.0f",
			prefix, dateStr, row.Summary.TotalAttempts, row.Summary.AverageTotal)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, a := range row.Attempts {
				mark := ""
				if a.ClarificationUsed {
					mark = "  +follow-up"
				}
				attemptLine := fmt.Sprintf("    %s (%s)  %s%s",
					truncate(a.QuestionText, 44), a.Category,
					theme.ScoreStyle(a.Score.Total).Render(fmt.Sprintf("%d", a.Score.Total)),
					mark)
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(attemptLine)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
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
