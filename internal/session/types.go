package session

import (
	"context"
	"time"

	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/rubric"
)

// State identifies the engine's position in the practice loop.
type State int

const (
	StateIdle State = iota
	StateAwaitingAnswer
	StateAwaitingClarification
	StateScoring
	StateCoaching
	StateRecorded
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingAnswer:
		return "awaiting-answer"
	case StateAwaitingClarification:
		return "awaiting-clarification"
	case StateScoring:
		return "scoring"
	case StateCoaching:
		return "coaching"
	case StateRecorded:
		return "recorded"
	case StateEnded:
		return "ended"
	}
	return "unknown"
}

// Feedback is the coaching output attached to a recorded attempt.
type Feedback struct {
	// Coaching is the main feedback paragraph.
	Coaching string `json:"coaching"`

	// ImprovementBullet names the single highest-impact fix.
	ImprovementBullet string `json:"improvement_bullet,omitempty"`

	// PracticePrompt suggests a follow-up drill for the weakest dimension.
	PracticePrompt string `json:"practice_prompt,omitempty"`

	// IdealAnswer is a short model response generated for this question.
	IdealAnswer string `json:"ideal_answer,omitempty"`

	// ModelAnswer is the curated reference answer from the question
	// bank, when the question carries one.
	ModelAnswer string `json:"model_answer,omitempty"`
}

// Attempt is one recorded question/answer/score/feedback tuple. Attempts
// are append-only: once recorded they are never mutated.
type Attempt struct {
	SessionID    string                  `json:"session_id"`
	QuestionID   string                  `json:"question_id"`
	QuestionText string                  `json:"question_text"`
	Category     questionbank.Category   `json:"category"`
	Difficulty   questionbank.Difficulty `json:"difficulty"`

	// Answer is the text that was scored: the original answer, or the
	// merged original-plus-clarification when a follow-up round ran.
	Answer string `json:"answer"`

	Score    rubric.ScoreResult `json:"score"`
	Feedback Feedback           `json:"feedback"`

	ClarificationUsed bool `json:"clarification_used"`

	// CoachingDegraded marks attempts whose coaching call failed after
	// retry. The score is still authoritative.
	CoachingDegraded bool `json:"coaching_degraded"`

	Timestamp time.Time `json:"timestamp"`
}

// Scorer evaluates an answer against the scoring rubric.
type Scorer interface {
	Score(ctx context.Context, q questionbank.Question, answer string) (rubric.ScoreResult, error)
}

// Coach produces feedback for a scored answer.
type Coach interface {
	Coach(ctx context.Context, q questionbank.Question, answer string, score rubric.ScoreResult) (Feedback, error)
}

// AttemptLog persists recorded attempts.
type AttemptLog interface {
	Append(ctx context.Context, a Attempt) error
}
