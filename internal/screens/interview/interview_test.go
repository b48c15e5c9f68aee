package interview

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillbridge/internal/adaptive"
	"github.com/abhisek/skillbridge/internal/clarify"
	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/router"
	"github.com/abhisek/skillbridge/internal/rubric"
	sess "github.com/abhisek/skillbridge/internal/session"
)

type stubScorer struct {
	result rubric.ScoreResult
	err    error
}

func (s *stubScorer) Score(context.Context, questionbank.Question, string) (rubric.ScoreResult, error) {
	if s.err != nil {
		return rubric.ScoreResult{}, s.err
	}
	return s.result, nil
}

type stubCoach struct{}

func (stubCoach) Coach(context.Context, questionbank.Question, string, rubric.ScoreResult) (sess.Feedback, error) {
	return sess.Feedback{Coaching: "Good work overall."}, nil
}

func strongResult(t *testing.T) rubric.ScoreResult {
	t.Helper()
	r, err := rubric.Default().Derive(map[string]int{
		rubric.DimClarity:       90,
		rubric.DimStarStructure: 90,
		rubric.DimRelevance:     80,
	})
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	return r
}

// strongAnswer passes the word-count and metric clarification triggers.
func strongAnswer() string {
	words := make([]string, 119)
	for i := range words {
		words[i] = "word"
	}
	return strings.Join(words, " ") + " 40%"
}

func testScreen(t *testing.T, scorer sess.Scorer) *InterviewScreen {
	t.Helper()
	// A strong first answer advances the level, so the second draw
	// lands on the hard question and the third exhausts the pool.
	questions := []questionbank.Question{
		{ID: "m1", Text: "Tell me about a team conflict.", Category: questionbank.CategoryConflict, Difficulty: questionbank.DifficultyMedium},
		{ID: "h1", Text: "Describe a time you led a project.", Category: questionbank.CategoryLeadership, Difficulty: questionbank.DifficultyHard},
	}
	bank := questionbank.New(questions, rand.New(rand.NewPCG(1, 2)))

	eng, err := sess.NewEngine(sess.Config{
		UserID:   "tester",
		Selector: adaptive.New(bank, adaptive.DefaultConfig()),
		Scorer:   scorer,
		Coach:    stubCoach{},
		Policy:   clarify.New(clarify.DefaultConfig()),
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return New(eng)
}

func startScreen(t *testing.T, s *InterviewScreen) {
	t.Helper()
	msg := s.startSession()()
	ready, ok := msg.(questionReadyMsg)
	if !ok {
		t.Fatalf("expected questionReadyMsg, got %T", msg)
	}
	s.Update(ready)
	if s.phase != phaseAnswering {
		t.Fatalf("expected answering phase, got %v", s.phase)
	}
}

func TestInterview_StartShowsQuestion(t *testing.T) {
	s := testScreen(t, &stubScorer{result: strongResult(t)})
	startScreen(t, s)

	view := s.View(100, 30)
	if !strings.Contains(view, "Tell me about") && !strings.Contains(view, "Describe a time") {
		t.Error("expected question text in view")
	}
}

func TestInterview_SubmitToFeedback(t *testing.T) {
	s := testScreen(t, &stubScorer{result: strongResult(t)})
	startScreen(t, s)

	s.input.Model.SetValue(strongAnswer())
	_, cmd := s.submit()
	if s.phase != phaseScoring {
		t.Fatalf("expected scoring phase, got %v", s.phase)
	}
	if cmd == nil {
		t.Fatal("expected a submit command")
	}

	// The engine call runs inside the batched command; drive it directly.
	turn, err := s.engine.SubmitAnswer(context.Background(), strongAnswer())
	s.Update(turnDoneMsg{Turn: turn, Err: err})

	if s.phase != phaseFeedback {
		t.Fatalf("expected feedback phase, got %v", s.phase)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Score: 88 / 100") {
		t.Errorf("expected total score in view, got:\n%s", view)
	}
	if !strings.Contains(view, "Good work overall.") {
		t.Error("expected coaching text in view")
	}
}

func TestInterview_ShortAnswerGetsFollowUp(t *testing.T) {
	s := testScreen(t, &stubScorer{result: strongResult(t)})
	startScreen(t, s)

	turn, err := s.engine.SubmitAnswer(context.Background(), "short answer")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	s.Update(turnDoneMsg{Turn: turn})

	if s.phase != phaseClarifying {
		t.Fatalf("expected clarifying phase, got %v", s.phase)
	}
	if s.followUp == "" {
		t.Error("expected a follow-up prompt")
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Follow-up:") {
		t.Error("expected follow-up prompt in view")
	}
}

func TestInterview_ScoringFailureKeepsAnswer(t *testing.T) {
	scorer := &stubScorer{err: errors.New("model unavailable")}
	s := testScreen(t, scorer)
	startScreen(t, s)

	s.input.Model.SetValue("my answer")
	s.prevPhase = phaseAnswering
	s.phase = phaseScoring

	_, err := s.engine.SubmitAnswer(context.Background(), "my answer")
	s.Update(turnDoneMsg{Err: err})

	if s.phase != phaseAnswering {
		t.Fatalf("expected answering phase after oracle failure, got %v", s.phase)
	}
	if s.errMsg == "" {
		t.Error("expected an error banner")
	}
	if s.input.Value() != "my answer" {
		t.Error("expected the answer text to be preserved for retry")
	}
}

func TestInterview_EmptySubmitRejected(t *testing.T) {
	s := testScreen(t, &stubScorer{result: strongResult(t)})
	startScreen(t, s)

	s.input.Model.SetValue("   ")
	_, cmd := s.submit()
	if cmd != nil {
		t.Error("expected no command for an empty answer")
	}
	if s.phase != phaseAnswering {
		t.Errorf("expected answering phase, got %v", s.phase)
	}
	if s.errMsg == "" {
		t.Error("expected an error message")
	}
}

func TestInterview_ExhaustedPoolEndsSession(t *testing.T) {
	s := testScreen(t, &stubScorer{result: strongResult(t)})
	startScreen(t, s)

	// Answer both medium questions; the third draw has nothing left.
	for i := 0; i < 2; i++ {
		turn, err := s.engine.SubmitAnswer(context.Background(), strongAnswer())
		s.Update(turnDoneMsg{Turn: turn, Err: err})
		if s.phase != phaseFeedback {
			t.Fatalf("round %d: expected feedback phase, got %v", i, s.phase)
		}
		s.phase = phaseLoading
		msg := s.nextQuestion()()
		_, cmd := s.Update(msg)
		if i == 1 {
			if cmd == nil {
				t.Fatal("expected a command when the pool is exhausted")
			}
			if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
				t.Fatal("expected transition to the summary screen")
			}
		}
	}
}

func TestInterview_QuitIgnoredWhileScoring(t *testing.T) {
	s := testScreen(t, &stubScorer{result: strongResult(t)})
	startScreen(t, s)

	s.input.Model.SetValue(strongAnswer())
	s.submit()
	if s.phase != phaseScoring {
		t.Fatalf("expected scoring phase, got %v", s.phase)
	}

	// The scoring call is in flight; quit keys must not reach the
	// engine until the result lands.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.quitConfirm {
		t.Fatal("quit confirm opened while scoring")
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'y'})
	if cmd != nil {
		t.Fatal("key produced a command while scoring")
	}

	turn, err := s.engine.SubmitAnswer(context.Background(), strongAnswer())
	s.Update(turnDoneMsg{Turn: turn, Err: err})
	if s.phase != phaseFeedback {
		t.Fatalf("expected feedback phase, got %v", s.phase)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !s.quitConfirm {
		t.Fatal("expected quit confirm once scoring finished")
	}
}

func TestInterview_QuitConfirm(t *testing.T) {
	s := testScreen(t, &stubScorer{result: strongResult(t)})
	startScreen(t, s)

	if !s.HandlesEsc() {
		t.Fatal("expected the screen to consume esc while live")
	}

	view := s.View(100, 30)
	if strings.Contains(view, "End session early?") {
		t.Fatal("quit confirm should not show before esc")
	}

	s.quitConfirm = true
	view = s.View(100, 30)
	if !strings.Contains(view, "End session early?") {
		t.Error("expected quit confirmation dialog")
	}
}
