// Package session runs the practice loop: a state machine that draws
// questions, routes answers through the clarification policy and the
// scoring and coaching oracles, and records attempts.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/skillbridge/internal/adaptive"
	"github.com/abhisek/skillbridge/internal/clarify"
	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/rubric"
)

// coachingPlaceholder fills the feedback slot of a degraded attempt.
const coachingPlaceholder = "Coaching is temporarily unavailable for this attempt. Your scores were still recorded."

// Config holds the engine's dependencies and identity.
type Config struct {
	UserID string

	// Focus is the preferred question category, empty for any.
	Focus questionbank.Category

	Selector *adaptive.Selector
	Scorer   Scorer
	Coach    Coach
	Policy   *clarify.Policy

	// Log receives recorded attempts. Optional.
	Log AttemptLog

	// Now overrides the clock. Optional, used by tests.
	Now func() time.Time
}

// Turn is the outcome of submitting an answer or a clarification.
// Exactly one of FollowUp and Attempt is set.
type Turn struct {
	// FollowUp is the clarification prompt when a follow-up round was
	// issued instead of recording the answer.
	FollowUp string

	// Attempt is the recorded attempt when the answer was finalized.
	Attempt *Attempt
}

// Engine drives a single practice session. It is not safe for
// concurrent use; the TUI event loop serializes all calls.
type Engine struct {
	sessionID string
	userID    string
	focus     questionbank.Category

	selector *adaptive.Selector
	scorer   Scorer
	coach    Coach
	policy   *clarify.Policy
	log      AttemptLog
	now      func() time.Time

	state          State
	current        questionbank.Question
	originalAnswer string
	clarified      bool
	asked          map[string]bool
	attempts       []Attempt
	lastTotal      *int
}

// NewEngine creates an idle engine. Selector, Scorer, Coach and Policy
// are required.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Selector == nil {
		return nil, fmt.Errorf("session: selector is required")
	}
	if cfg.Scorer == nil {
		return nil, fmt.Errorf("session: scorer is required")
	}
	if cfg.Coach == nil {
		return nil, fmt.Errorf("session: coach is required")
	}
	if cfg.Policy == nil {
		return nil, fmt.Errorf("session: clarification policy is required")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Engine{
		sessionID: uuid.NewString(),
		userID:    cfg.UserID,
		focus:     cfg.Focus,
		selector:  cfg.Selector,
		scorer:    cfg.Scorer,
		coach:     cfg.Coach,
		policy:    cfg.Policy,
		log:       cfg.Log,
		now:       now,
		state:     StateIdle,
		asked:     make(map[string]bool),
	}, nil
}

// SessionID returns the engine's session identifier.
func (e *Engine) SessionID() string { return e.sessionID }

// UserID returns the practicing user's identifier.
func (e *Engine) UserID() string { return e.userID }

// State returns the current machine state.
func (e *Engine) State() State { return e.state }

// Current returns the question awaiting an answer.
func (e *Engine) Current() questionbank.Question { return e.current }

// Level returns the selector's current difficulty.
func (e *Engine) Level() questionbank.Difficulty { return e.selector.Level() }

// Attempts returns a copy of the attempts recorded so far.
func (e *Engine) Attempts() []Attempt {
	out := make([]Attempt, len(e.attempts))
	copy(out, e.attempts)
	return out
}

// Start draws the first question and moves to awaiting-answer.
func (e *Engine) Start(ctx context.Context) (questionbank.Question, error) {
	if e.state != StateIdle {
		return questionbank.Question{}, &ErrInvalidState{Op: "start", State: e.state}
	}
	return e.draw(nil)
}

// SubmitAnswer scores the answer and either issues a clarification
// follow-up or finalizes the attempt. On a scoring failure the engine
// returns to awaiting-answer with nothing recorded.
func (e *Engine) SubmitAnswer(ctx context.Context, answer string) (*Turn, error) {
	if e.state != StateAwaitingAnswer {
		return nil, &ErrInvalidState{Op: "submit answer", State: e.state}
	}

	e.state = StateScoring
	prelim, err := e.scorer.Score(ctx, e.current, answer)
	if e.state == StateEnded {
		// The session was closed while scoring was in flight.
		return nil, &ErrInvalidState{Op: "submit answer", State: StateEnded}
	}
	if err != nil {
		e.state = StateAwaitingAnswer
		return nil, &ErrOracle{Op: "scoring", Err: err}
	}

	if !e.clarified && e.policy.NeedsClarification(answer, prelim) {
		e.clarified = true
		e.originalAnswer = answer
		e.state = StateAwaitingClarification
		return &Turn{FollowUp: e.policy.FollowUpPrompt(e.current, prelim.StructureIssue)}, nil
	}

	return e.finalize(ctx, answer, prelim, false)
}

// SubmitClarification merges the follow-up text with the original
// answer, re-scores the merged text and finalizes the attempt. A second
// clarification round is never issued. On a scoring failure the engine
// returns to awaiting-clarification.
func (e *Engine) SubmitClarification(ctx context.Context, followup string) (*Turn, error) {
	if e.state != StateAwaitingClarification {
		return nil, &ErrInvalidState{Op: "submit clarification", State: e.state}
	}

	merged := clarify.Merge(e.originalAnswer, followup)

	e.state = StateScoring
	score, err := e.scorer.Score(ctx, e.current, merged)
	if e.state == StateEnded {
		return nil, &ErrInvalidState{Op: "submit clarification", State: StateEnded}
	}
	if err != nil {
		e.state = StateAwaitingClarification
		return nil, &ErrOracle{Op: "scoring", Err: err}
	}

	return e.finalize(ctx, merged, score, true)
}

// Next draws the next question, adjusting difficulty from the last
// recorded total. An exhausted pool ends the session.
func (e *Engine) Next(ctx context.Context) (questionbank.Question, error) {
	if e.state != StateRecorded {
		return questionbank.Question{}, &ErrInvalidState{Op: "next question", State: e.state}
	}
	return e.draw(e.lastTotal)
}

// End closes the session and returns the recorded attempts. Ending is
// idempotent and allowed from any state.
func (e *Engine) End() []Attempt {
	e.state = StateEnded
	return e.Attempts()
}

func (e *Engine) draw(lastTotal *int) (questionbank.Question, error) {
	q, err := e.selector.NextQuestion(lastTotal, e.asked, e.focus)
	if err != nil {
		var exhausted *questionbank.ErrExhaustedPool
		if errors.As(err, &exhausted) {
			e.state = StateEnded
		}
		return questionbank.Question{}, err
	}

	e.asked[q.ID] = true
	e.current = q
	e.originalAnswer = ""
	e.clarified = false
	e.state = StateAwaitingAnswer
	return q, nil
}

func (e *Engine) finalize(ctx context.Context, answer string, score rubric.ScoreResult, clarificationUsed bool) (*Turn, error) {
	e.state = StateCoaching

	feedback, coachErr := e.coach.Coach(ctx, e.current, answer, score)
	if e.state == StateEnded {
		// Ended is terminal: nothing may be recorded after it.
		return nil, &ErrInvalidState{Op: "record attempt", State: StateEnded}
	}
	degraded := coachErr != nil
	if degraded {
		feedback = Feedback{Coaching: coachingPlaceholder, ModelAnswer: e.current.ModelAnswer}
	}

	attempt := Attempt{
		SessionID:         e.sessionID,
		QuestionID:        e.current.ID,
		QuestionText:      e.current.Text,
		Category:          e.current.Category,
		Difficulty:        e.current.Difficulty,
		Answer:            answer,
		Score:             score,
		Feedback:          feedback,
		ClarificationUsed: clarificationUsed,
		CoachingDegraded:  degraded,
		Timestamp:         e.now().UTC(),
	}

	e.attempts = append(e.attempts, attempt)
	total := score.Total
	e.lastTotal = &total
	e.state = StateRecorded

	if e.log != nil {
		if err := e.log.Append(ctx, attempt); err != nil && !degraded {
			return &Turn{Attempt: &attempt}, fmt.Errorf("session: recording attempt: %w", err)
		}
	}

	if degraded {
		return &Turn{Attempt: &attempt}, &ErrCoachingUnavailable{Err: coachErr}
	}
	return &Turn{Attempt: &attempt}, nil
}
