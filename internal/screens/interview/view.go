package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillbridge/internal/rubric"
	"github.com/abhisek/skillbridge/internal/ui/components"
	"github.com/abhisek/skillbridge/internal/ui/theme"
)

func (s *InterviewScreen) View(width, height int) string {
	if s.fatal != "" {
		return renderFatal(width, s.fatal)
	}
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}

	switch s.phase {
	case phaseLoading:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Drawing a question...")
	case phaseScoring:
		frame := spinnerFrames[s.spinnerFrame%len(spinnerFrames)]
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("\n\n\n  %s Scoring your answer...", frame))
	case phaseFeedback:
		return s.renderFeedback(width)
	default:
		return s.renderQuestion(width)
	}
}

// renderQuestion renders the active question with the answer box. In
// the clarification phase the follow-up prompt replaces the question
// header styling.
func (s *InterviewScreen) renderQuestion(width int) string {
	q := s.engine.Current()

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", q.Category))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d   ◆ %s", len(s.engine.Attempts())+1, q.Difficulty))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	questionStyle := theme.Question.Width(min(width-8, 76))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, questionStyle.Render(q.Text)))
	b.WriteString("\n\n")

	if s.phase == phaseClarifying {
		followStyle := lipgloss.NewStyle().
			Foreground(theme.Accent).
			Width(min(width-8, 76))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			followStyle.Render("Follow-up: "+s.followUp)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)))
	}

	return b.String()
}

// renderFeedback renders the scored attempt with its coaching.
func (s *InterviewScreen) renderFeedback(width int) string {
	a := s.attempt
	if a == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	total := theme.ScoreStyle(a.Score.Total).Render(fmt.Sprintf("Score: %d / 100", a.Score.Total))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, total))
	b.WriteString("\n\n")

	// Dimension bars in rubric order.
	barWidth := min(width-20, 50)
	for _, name := range rubric.Default().DimensionNames() {
		score := a.Score.Scores[name]
		label := fmt.Sprintf("%-14s %3d", strings.ReplaceAll(name, "_", " "), score)
		bar := components.NewProgressBar(label, float64(score)/100, false, barWidth+20)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	textWidth := min(width-8, 76)
	bodyStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(textWidth)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(textWidth)

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bodyStyle.Render(a.Feedback.Coaching)))
	b.WriteString("\n\n")

	if a.Feedback.ImprovementBullet != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			bodyStyle.Render("• "+a.Feedback.ImprovementBullet)))
		b.WriteString("\n")
	}
	if a.Feedback.PracticePrompt != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			dimStyle.Render("Try next: "+a.Feedback.PracticePrompt)))
		b.WriteString("\n")
	}

	ideal := a.Feedback.IdealAnswer
	if ideal == "" {
		ideal = a.Feedback.ModelAnswer
	}
	if ideal != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			dimStyle.Render("A strong answer: "+ideal)))
		b.WriteString("\n")
	}

	var notes []string
	if a.ClarificationUsed {
		notes = append(notes, "scored with your clarification included")
	}
	if s.degraded || a.CoachingDegraded {
		notes = append(notes, "coaching was unavailable for this attempt")
	}
	if len(notes) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(strings.Join(notes, " · "))))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Warning).Render(s.errMsg)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Enter for the next question, E to end the session")))

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Recorded answers are already saved."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderFatal renders an unrecoverable error.
func renderFatal(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press Esc to go back.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
