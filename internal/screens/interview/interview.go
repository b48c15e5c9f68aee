package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillbridge/internal/clarify"
	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/report"
	"github.com/abhisek/skillbridge/internal/router"
	"github.com/abhisek/skillbridge/internal/screen"
	"github.com/abhisek/skillbridge/internal/screens/summary"
	sess "github.com/abhisek/skillbridge/internal/session"
	"github.com/abhisek/skillbridge/internal/ui/components"
	"github.com/abhisek/skillbridge/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseClarifying
	phaseScoring
	phaseFeedback
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// InterviewScreen runs one practice session: question, answer, optional
// clarification round, then scored feedback.
type InterviewScreen struct {
	engine *sess.Engine
	input  components.AnswerInput

	phase     phase
	prevPhase phase
	followUp  string
	attempt   *sess.Attempt
	degraded  bool

	errMsg       string
	fatal        string
	quitConfirm  bool
	spinnerFrame int
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)
var _ screen.EscHandler = (*InterviewScreen)(nil)
var _ screen.SessionInfoProvider = (*InterviewScreen)(nil)

// New creates an InterviewScreen around a freshly built engine.
func New(engine *sess.Engine) *InterviewScreen {
	input := components.NewAnswerInput(
		"Describe the situation, your task, the actions you took, and the result...",
		clarify.DefaultConfig().MinWords,
	)
	input.SetSize(72, 6)

	return &InterviewScreen{
		engine: engine,
		input:  input,
		phase:  phaseLoading,
	}
}

func (s *InterviewScreen) Title() string {
	return "Practice"
}

// SessionInfo reports the difficulty level and answer count for the header.
func (s *InterviewScreen) SessionInfo() (string, int) {
	return s.engine.Level().String(), len(s.engine.Attempts())
}

// HandlesEsc keeps the session alive behind a quit confirmation until
// it hits an unrecoverable error.
func (s *InterviewScreen) HandlesEsc() bool {
	return s.fatal == ""
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	if s.fatal != "" {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.phase {
	case phaseAnswering, phaseClarifying:
		return []layout.KeyHint{
			{Key: "Ctrl+D", Description: "Submit"},
			{Key: "Esc", Description: "End session"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next question"},
			{Key: "E", Description: "End session"},
		}
	}
	return nil
}

func (s *InterviewScreen) Init() tea.Cmd {
	return tea.Batch(
		s.startSession(),
		s.input.Init(),
	)
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		return s.handleQuestionReady(msg)

	case turnDoneMsg:
		return s.handleTurnDone(msg)

	case spinnerTickMsg:
		if s.phase == phaseScoring {
			s.spinnerFrame++
			return s, spinnerTick()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward everything else to the answer box while it is active.
	if s.typing() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *InterviewScreen) typing() bool {
	return (s.phase == phaseAnswering || s.phase == phaseClarifying) && !s.quitConfirm
}

func (s *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.fatal != "" {
		return s, nil
	}

	// An engine call is in flight; ending the session now would
	// interleave with it. Keys resume once the result arrives.
	if s.phase == phaseLoading || s.phase == phaseScoring {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			return s, s.finishSession()
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if key == "esc" {
		s.quitConfirm = true
		return s, nil
	}

	switch s.phase {
	case phaseAnswering, phaseClarifying:
		if key == "ctrl+d" {
			return s.submit()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case phaseFeedback:
		switch key {
		case "enter":
			s.phase = phaseLoading
			s.attempt = nil
			s.degraded = false
			return s, s.nextQuestion()
		case "e", "E":
			return s, s.finishSession()
		}
	}

	return s, nil
}

func (s *InterviewScreen) submit() (screen.Screen, tea.Cmd) {
	text := strings.TrimSpace(s.input.Value())
	if text == "" {
		s.errMsg = "Say something first."
		return s, nil
	}

	s.errMsg = ""
	s.prevPhase = s.phase
	clarifying := s.phase == phaseClarifying
	s.phase = phaseScoring

	submitCmd := func() tea.Msg {
		ctx := context.Background()
		var turn *sess.Turn
		var err error
		if clarifying {
			turn, err = s.engine.SubmitClarification(ctx, text)
		} else {
			turn, err = s.engine.SubmitAnswer(ctx, text)
		}
		return turnDoneMsg{Turn: turn, Err: err}
	}

	return s, tea.Batch(submitCmd, spinnerTick())
}

func (s *InterviewScreen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		var exhausted *questionbank.ErrExhaustedPool
		if errors.As(msg.Err, &exhausted) {
			// No questions left at this level: the session is over.
			return s, s.finishSession()
		}
		s.fatal = msg.Err.Error()
		return s, nil
	}

	s.phase = phaseAnswering
	s.followUp = ""
	s.input.Reset()
	return s, s.input.Init()
}

func (s *InterviewScreen) handleTurnDone(msg turnDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		var oracle *sess.ErrOracle
		if errors.As(msg.Err, &oracle) {
			// Nothing was recorded; the answer text is still in the
			// box so the user can retry.
			s.errMsg = fmt.Sprintf("Scoring failed: %v. Press Ctrl+D to retry.", oracle.Err)
			s.phase = s.prevPhase
			return s, nil
		}

		var coachErr *sess.ErrCoachingUnavailable
		if errors.As(msg.Err, &coachErr) {
			s.degraded = true
			// The attempt was still scored and recorded; fall through
			// to the feedback view.
		} else if msg.Turn == nil || msg.Turn.Attempt == nil {
			s.fatal = msg.Err.Error()
			return s, nil
		} else {
			// Persistence failed but the attempt exists in memory.
			s.errMsg = fmt.Sprintf("Warning: %v", msg.Err)
		}
	}

	if msg.Turn.FollowUp != "" {
		s.phase = phaseClarifying
		s.followUp = msg.Turn.FollowUp
		s.input.Reset()
		return s, s.input.Init()
	}

	s.attempt = msg.Turn.Attempt
	s.phase = phaseFeedback
	return s, nil
}

func (s *InterviewScreen) startSession() tea.Cmd {
	return func() tea.Msg {
		q, err := s.engine.Start(context.Background())
		return questionReadyMsg{Question: q, Err: err}
	}
}

func (s *InterviewScreen) nextQuestion() tea.Cmd {
	return func() tea.Msg {
		q, err := s.engine.Next(context.Background())
		return questionReadyMsg{Question: q, Err: err}
	}
}

// finishSession closes the engine and swaps in the summary screen.
func (s *InterviewScreen) finishSession() tea.Cmd {
	attempts := s.engine.End()
	sum := report.Build(attempts)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
