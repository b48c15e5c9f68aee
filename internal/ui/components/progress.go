package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillbridge/internal/ui/theme"
)

const (
	barFilled = "█"
	barEmpty  = "░"
)

var barEmptyStyle = lipgloss.NewStyle().Foreground(theme.Border)

// ProgressBar renders a labeled horizontal score bar. The fill color
// follows the score bands used across the app.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a progress bar. Percent is in [0, 1].
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the bar.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - lipgloss.Width(b.String()) - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	fillStyle := theme.ScoreStyle(int(p.Percent * 100))
	b.WriteString(fillStyle.Render(strings.Repeat(barFilled, filled)))
	b.WriteString(barEmptyStyle.Render(strings.Repeat(barEmpty, barWidth-filled)))

	if p.ShowPercent {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100))))
	}

	return b.String()
}
