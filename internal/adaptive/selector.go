// Package adaptive adjusts question difficulty from recent performance.
package adaptive

import (
	"github.com/abhisek/skillbridge/internal/questionbank"
)

// Config holds the difficulty-transition policy. The boundaries are
// product policy, not structural constants, so they live here.
type Config struct {
	// AdvanceAt is the total score at or above which the level steps up.
	AdvanceAt int

	// RetreatAt is the total score below which the level steps down.
	RetreatAt int

	// Initial is the level used for the first question of a session.
	Initial questionbank.Difficulty
}

// DefaultConfig returns the standard 75/50 policy starting at medium.
func DefaultConfig() Config {
	return Config{
		AdvanceAt: 75,
		RetreatAt: 50,
		Initial:   questionbank.DifficultyMedium,
	}
}

// Selector tracks the current difficulty level and picks the next
// question from the bank. Level transitions move at most one step per
// call and never leave the easy..hard range.
type Selector struct {
	bank  *questionbank.Bank
	cfg   Config
	level questionbank.Difficulty
}

// New creates a Selector at the configured initial level.
func New(bank *questionbank.Bank, cfg Config) *Selector {
	return &Selector{
		bank:  bank,
		cfg:   cfg,
		level: cfg.Initial,
	}
}

// Level returns the current difficulty level.
func (s *Selector) Level() questionbank.Difficulty {
	return s.level
}

// NextQuestion adjusts the level from the last total score and draws a
// question the session has not used yet. A nil lastTotal (first
// question) keeps the current level. The draw failure is returned
// as-is; the level adjustment still sticks, matching the invariant
// that transitions are driven by scores, not by pool state.
func (s *Selector) NextQuestion(lastTotal *int, used map[string]bool, preferred questionbank.Category) (questionbank.Question, error) {
	if lastTotal != nil {
		switch {
		case *lastTotal >= s.cfg.AdvanceAt:
			s.level = s.level.Advance()
		case *lastTotal < s.cfg.RetreatAt:
			s.level = s.level.Retreat()
		}
	}
	return s.bank.Draw(s.level, used, preferred)
}
