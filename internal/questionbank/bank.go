package questionbank

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
)

// Bank is the immutable catalog of interview questions, bucketed by
// difficulty. It is loaded once at startup and safe for repeated draws;
// draw order within a matching set is randomized but deterministic
// under a fixed seed.
type Bank struct {
	byDifficulty map[Difficulty][]Question
	count        int
	rng          *rand.Rand
}

// questionRecord is the JSON wire form of one corpus entry.
type questionRecord struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	ModelAnswer string `json:"model_answer,omitempty"`
}

// New builds a Bank from already-validated questions. A nil rng gets
// an automatically seeded source; tests pass a fixed-seed rand.Rand.
func New(questions []Question, rng *rand.Rand) *Bank {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	buckets := make(map[Difficulty][]Question)
	for _, q := range questions {
		buckets[q.Difficulty] = append(buckets[q.Difficulty], q)
	}
	return &Bank{
		byDifficulty: buckets,
		count:        len(questions),
		rng:          rng,
	}
}

// Load parses a question corpus from r and builds a Bank. Any malformed
// record aborts the load entirely; duplicate ids are malformed.
func Load(r io.Reader, rng *rand.Rand) (*Bank, error) {
	var records []questionRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, &ErrValidation{Reason: fmt.Sprintf("parse corpus: %v", err)}
	}
	if len(records) == 0 {
		return nil, &ErrValidation{Reason: "corpus is empty"}
	}

	seen := make(map[string]bool, len(records))
	questions := make([]Question, 0, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			return nil, &ErrValidation{Reason: fmt.Sprintf("record %d has no id", i)}
		}
		if seen[rec.ID] {
			return nil, &ErrValidation{Reason: fmt.Sprintf("duplicate question id %q", rec.ID)}
		}
		seen[rec.ID] = true
		if rec.Text == "" {
			return nil, &ErrValidation{Reason: fmt.Sprintf("question %q has no text", rec.ID)}
		}
		cat, err := ParseCategory(rec.Category)
		if err != nil {
			return nil, &ErrValidation{Reason: fmt.Sprintf("question %q: %v", rec.ID, err)}
		}
		diff, err := ParseDifficulty(rec.Difficulty)
		if err != nil {
			return nil, &ErrValidation{Reason: fmt.Sprintf("question %q: %v", rec.ID, err)}
		}
		questions = append(questions, Question{
			ID:          rec.ID,
			Text:        rec.Text,
			Category:    cat,
			Difficulty:  diff,
			ModelAnswer: rec.ModelAnswer,
		})
	}

	return New(questions, rng), nil
}

// Len returns the total number of questions in the bank.
func (b *Bank) Len() int {
	return b.count
}

// CountAt returns the number of questions at the given difficulty.
func (b *Bank) CountAt(d Difficulty) int {
	return len(b.byDifficulty[d])
}

// Draw picks a random question at the requested difficulty whose id is
// not in excluded. Category preference is best-effort: when no question
// of the preferred category remains, any category at the requested
// difficulty is acceptable. Returns ErrExhaustedPool when nothing at
// the difficulty survives exclusion; it never silently widens the
// difficulty; the caller owns that fallback.
func (b *Bank) Draw(d Difficulty, excluded map[string]bool, preferred Category) (Question, error) {
	var candidates []Question
	for _, q := range b.byDifficulty[d] {
		if excluded[q.ID] {
			continue
		}
		candidates = append(candidates, q)
	}
	if len(candidates) == 0 {
		return Question{}, &ErrExhaustedPool{Difficulty: d}
	}

	if preferred != "" {
		var inCategory []Question
		for _, q := range candidates {
			if q.Category == preferred {
				inCategory = append(inCategory, q)
			}
		}
		if len(inCategory) > 0 {
			candidates = inCategory
		}
	}

	return candidates[b.rng.IntN(len(candidates))], nil
}
