package app

import (
	"fmt"
	"os"
	"os/user"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillbridge/internal/adaptive"
	"github.com/abhisek/skillbridge/internal/clarify"
	"github.com/abhisek/skillbridge/internal/coach"
	"github.com/abhisek/skillbridge/internal/evaluate"
	"github.com/abhisek/skillbridge/internal/llm"
	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/router"
	"github.com/abhisek/skillbridge/internal/rubric"
	"github.com/abhisek/skillbridge/internal/screen"
	"github.com/abhisek/skillbridge/internal/screens/home"
	"github.com/abhisek/skillbridge/internal/screens/welcome"
	"github.com/abhisek/skillbridge/internal/session"
	"github.com/abhisek/skillbridge/internal/store"
	"github.com/abhisek/skillbridge/internal/ui/layout"
)

// Options carries the services the app runs on. LLMProvider is
// optional: without it, scoring falls back to local heuristics and
// coaching to templates.
type Options struct {
	AttemptRepo store.AttemptRepo
	LLMProvider llm.Provider
	UserID      string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates the root model: a welcome splash that hands off
// to the home screen.
func newAppModel(opts Options) (AppModel, error) {
	bank, err := questionbank.LoadDefault(nil)
	if err != nil {
		return AppModel{}, fmt.Errorf("loading question bank: %w", err)
	}

	r := rubric.Default()
	templates, err := coach.LoadDefaultTemplates()
	if err != nil {
		return AppModel{}, fmt.Errorf("loading coaching templates: %w", err)
	}

	var scorer session.Scorer
	var sessionCoach session.Coach
	coachLabel := "offline heuristics"
	if opts.LLMProvider != nil {
		scorer = evaluate.NewLLMScorer(opts.LLMProvider, r, evaluate.DefaultConfig())
		sessionCoach = coach.NewLLMCoach(opts.LLMProvider, r, templates, coach.DefaultConfig())
		coachLabel = opts.LLMProvider.ModelID()
	} else {
		scorer = evaluate.NewHeuristicScorer(r)
		sessionCoach = coach.NewTemplateCoach(r, templates)
	}

	userID := opts.UserID
	if userID == "" {
		if u, err := user.Current(); err == nil {
			userID = u.Username
		} else {
			userID = "local"
		}
	}

	var log session.AttemptLog
	if opts.AttemptRepo != nil {
		log = opts.AttemptRepo
	}

	newEngine := func(focus questionbank.Category) (*session.Engine, error) {
		// Each session gets its own selector so difficulty always
		// starts at medium.
		selector := adaptive.New(bank, adaptive.DefaultConfig())
		return session.NewEngine(session.Config{
			UserID:   userID,
			Focus:    focus,
			Selector: selector,
			Scorer:   scorer,
			Coach:    sessionCoach,
			Policy:   clarify.New(clarify.DefaultConfig()),
			Log:      log,
		})
	}

	homeFactory := func() screen.Screen {
		return home.New(newEngine, opts.AttemptRepo, coachLabel)
	}

	return AppModel{
		router: router.New(welcome.New(homeFactory)),
	}, nil
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens with a live session consume esc themselves.
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.HandlesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	level := ""
	answered := 0
	if info, ok := active.(screen.SessionInfoProvider); ok {
		level, answered = info.SessionInfo()
	}

	header := layout.RenderHeader(title, level, answered, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	model, err := newAppModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model)
	_, err = p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
