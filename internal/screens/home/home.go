package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/report"
	"github.com/abhisek/skillbridge/internal/router"
	"github.com/abhisek/skillbridge/internal/screen"
	"github.com/abhisek/skillbridge/internal/screens/interview"
	"github.com/abhisek/skillbridge/internal/screens/progress"
	"github.com/abhisek/skillbridge/internal/session"
	"github.com/abhisek/skillbridge/internal/store"
	"github.com/abhisek/skillbridge/internal/ui/components"
	"github.com/abhisek/skillbridge/internal/ui/theme"
)

// EngineFactory builds a fresh practice session for the chosen focus
// category. An empty focus means any category.
type EngineFactory func(focus questionbank.Category) (*session.Engine, error)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu         components.Menu
	newEngine    EngineFactory
	attemptRepo  store.AttemptRepo
	coachLabel   string
	focusIdx     int
	totalAnswers int
	avgScore     float64
}

var _ screen.Screen = (*HomeScreen)(nil)

// focusChoices is the cycling order of the focus menu item. Index 0 is
// "any category".
var focusChoices = append([]questionbank.Category{""}, questionbank.Categories()...)

// statsLoadedMsg carries the lifetime numbers for the stats card.
type statsLoadedMsg struct {
	answers int
	avg     float64
}

// New creates a new HomeScreen. coachLabel names the scoring backend
// shown in the stats card, e.g. a model ID or "offline heuristics".
func New(newEngine EngineFactory, attemptRepo store.AttemptRepo, coachLabel string) *HomeScreen {
	h := &HomeScreen{
		newEngine:   newEngine,
		attemptRepo: attemptRepo,
		coachLabel:  coachLabel,
	}
	h.menu = components.NewMenu(h.buildItems())
	return h
}

// loadStats rebuilds the lifetime stats card. Best effort: a fresh
// database simply shows zeros.
func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.attemptRepo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		attempts, err := repo.Recent(context.Background(), 0)
		if err != nil {
			return statsLoadedMsg{}
		}
		sum := report.Build(attempts)
		return statsLoadedMsg{answers: sum.TotalAttempts, avg: sum.AverageTotal}
	}
}

func (h *HomeScreen) buildItems() []components.MenuItem {
	return []components.MenuItem{
		{Label: "START PRACTICE", Action: func() tea.Cmd {
			focus := focusChoices[h.focusIdx]
			return func() tea.Msg {
				eng, err := h.newEngine(focus)
				if err != nil {
					return router.PushScreenMsg{Screen: progress.NewError(err)}
				}
				return router.PushScreenMsg{Screen: interview.New(eng)}
			}
		}},
		{Label: h.focusLabel(), Action: func() tea.Cmd {
			h.cycleFocus()
			return nil
		}},
		{Label: "PROGRESS REPORT", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: progress.New(h.attemptRepo)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

func (h *HomeScreen) focusLabel() string {
	focus := focusChoices[h.focusIdx]
	if focus == "" {
		return "FOCUS: ALL CATEGORIES"
	}
	return "FOCUS: " + strings.ToUpper(strings.ReplaceAll(string(focus), "_", " "))
}

func (h *HomeScreen) cycleFocus() {
	h.focusIdx = (h.focusIdx + 1) % len(focusChoices)
	selected := h.menu.Selected
	h.menu = components.NewMenu(h.buildItems())
	h.menu.Selected = selected
}

// Init reloads the stats card. The router re-runs it whenever this
// screen is revealed by a pop, so the numbers stay current after a
// session ends.
func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if stats, ok := msg.(statsLoadedMsg); ok {
		h.totalAnswers = stats.answers
		h.avgScore = stats.avg
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("SkillBridge")
	subtitle := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Behavioral interview practice")
	sections = append(sections, title+"\n"+subtitle)

	// Stats card.
	stats := fmt.Sprintf("Answers: %d    Average: %.0f    Coach: %s",
		h.totalAnswers, h.avgScore, h.coachLabel)
	sections = append(sections, theme.Card.Render(
		lipgloss.NewStyle().Foreground(theme.Text).Render(stats)))

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
