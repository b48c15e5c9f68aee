package components

import (
	"fmt"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillbridge/internal/clarify"
	"github.com/abhisek/skillbridge/internal/ui/theme"
)

// AnswerInput wraps bubbles/textarea for long free-text answers. It
// shows a live word count under the box so the user can see whether
// they are in follow-up territory.
type AnswerInput struct {
	Model     textarea.Model
	WordGoal  int
	MaxHeight int
}

// NewAnswerInput creates a multi-line answer box. wordGoal is the word
// count below which the session will ask a follow-up; 0 hides the
// counter hint.
func NewAnswerInput(placeholder string, wordGoal int) AnswerInput {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.Focus()

	return AnswerInput{
		Model:     ta,
		WordGoal:  wordGoal,
		MaxHeight: 8,
	}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update handles messages.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// SetSize resizes the box to fit the available content area.
func (a *AnswerInput) SetSize(width, height int) {
	if height > a.MaxHeight {
		height = a.MaxHeight
	}
	if height < 3 {
		height = 3
	}
	a.Model.SetWidth(width)
	a.Model.SetHeight(height)
}

// View renders the answer box with the word counter line.
func (a AnswerInput) View() string {
	view := a.Model.View()

	words := clarify.WordCount(a.Value())
	counter := fmt.Sprintf("%d words", words)
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if a.WordGoal > 0 {
		counter = fmt.Sprintf("%d / %d words", words, a.WordGoal)
		if words >= a.WordGoal {
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
	}

	return view + "\n" + style.Render(counter)
}

// Value returns the current answer text.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Reset clears the box for the next answer.
func (a *AnswerInput) Reset() {
	a.Model.Reset()
}
