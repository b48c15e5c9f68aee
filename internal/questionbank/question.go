package questionbank

import "fmt"

// Difficulty is the ordinal hardness classification of a question.
// The zero value is DifficultyEasy.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// String returns the wire representation of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// Advance returns the next harder level, capped at hard.
func (d Difficulty) Advance() Difficulty {
	if d >= DifficultyHard {
		return DifficultyHard
	}
	return d + 1
}

// Retreat returns the next easier level, floored at easy.
func (d Difficulty) Retreat() Difficulty {
	if d <= DifficultyEasy {
		return DifficultyEasy
	}
	return d - 1
}

// ParseDifficulty maps a wire string to a Difficulty. Unknown values
// are a construction-time error, not a runtime fallback.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return 0, &ErrValidation{Reason: fmt.Sprintf("unknown difficulty %q", s)}
}

// Category is the closed set of behavioral question categories.
type Category string

const (
	CategoryTeamwork      Category = "teamwork"
	CategoryLeadership    Category = "leadership"
	CategoryConflict      Category = "conflict"
	CategoryFailure       Category = "failure"
	CategoryCommunication Category = "communication"
	CategoryTechnical     Category = "technical"
)

// Categories lists every valid category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryTeamwork,
		CategoryLeadership,
		CategoryConflict,
		CategoryFailure,
		CategoryCommunication,
		CategoryTechnical,
	}
}

// ParseCategory maps a wire string to a Category, rejecting unknowns.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", &ErrValidation{Reason: fmt.Sprintf("unknown category %q", s)}
}

// Question is one immutable entry of the interview question catalog.
type Question struct {
	// ID uniquely identifies the question within the corpus.
	ID string

	// Text is the prompt shown to the candidate.
	Text string

	// Category is the behavioral category, from the closed set above.
	Category Category

	// Difficulty is the ordinal hardness used by adaptive selection.
	Difficulty Difficulty

	// ModelAnswer is an optional reference answer shown by the coach.
	// Empty when the corpus provides none.
	ModelAnswer string
}
