package adaptive

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/abhisek/skillbridge/internal/questionbank"
)

func testBank(t *testing.T, questions ...questionbank.Question) *questionbank.Bank {
	t.Helper()
	return questionbank.New(questions, rand.New(rand.NewPCG(1, 2)))
}

func fullBank(t *testing.T) *questionbank.Bank {
	t.Helper()
	return testBank(t,
		questionbank.Question{ID: "e1", Text: "e", Category: questionbank.CategoryTeamwork, Difficulty: questionbank.DifficultyEasy},
		questionbank.Question{ID: "e2", Text: "e", Category: questionbank.CategoryConflict, Difficulty: questionbank.DifficultyEasy},
		questionbank.Question{ID: "m1", Text: "m", Category: questionbank.CategoryTeamwork, Difficulty: questionbank.DifficultyMedium},
		questionbank.Question{ID: "m2", Text: "m", Category: questionbank.CategoryConflict, Difficulty: questionbank.DifficultyMedium},
		questionbank.Question{ID: "h1", Text: "h", Category: questionbank.CategoryTeamwork, Difficulty: questionbank.DifficultyHard},
		questionbank.Question{ID: "h2", Text: "h", Category: questionbank.CategoryConflict, Difficulty: questionbank.DifficultyHard},
	)
}

func intPtr(v int) *int { return &v }

func TestNextQuestion_FirstDrawKeepsInitialLevel(t *testing.T) {
	s := New(fullBank(t), DefaultConfig())

	q, err := s.NextQuestion(nil, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Difficulty != questionbank.DifficultyMedium {
		t.Fatalf("first question at %s, want medium", q.Difficulty)
	}
	if s.Level() != questionbank.DifficultyMedium {
		t.Fatalf("level = %s, want medium", s.Level())
	}
}

func TestNextQuestion_Transitions(t *testing.T) {
	tests := []struct {
		name      string
		lastTotal int
		want      questionbank.Difficulty
	}{
		{"advance at threshold", 75, questionbank.DifficultyHard},
		{"advance above threshold", 100, questionbank.DifficultyHard},
		{"hold just below advance", 74, questionbank.DifficultyMedium},
		{"hold at retreat boundary", 50, questionbank.DifficultyMedium},
		{"retreat below boundary", 49, questionbank.DifficultyEasy},
		{"retreat at zero", 0, questionbank.DifficultyEasy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(fullBank(t), DefaultConfig())

			q, err := s.NextQuestion(intPtr(tt.lastTotal), nil, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Level() != tt.want {
				t.Fatalf("level = %s, want %s", s.Level(), tt.want)
			}
			if q.Difficulty != tt.want {
				t.Fatalf("question at %s, want %s", q.Difficulty, tt.want)
			}
		})
	}
}

func TestNextQuestion_OneStepPerCall(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Initial = questionbank.DifficultyEasy
	s := New(fullBank(t), cfg)

	// A run of perfect scores must climb one level at a time.
	if _, err := s.NextQuestion(intPtr(100), nil, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Level() != questionbank.DifficultyMedium {
		t.Fatalf("level = %s, want medium after one advance", s.Level())
	}

	if _, err := s.NextQuestion(intPtr(100), nil, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Level() != questionbank.DifficultyHard {
		t.Fatalf("level = %s, want hard after two advances", s.Level())
	}

	// Further advances clamp at hard.
	if _, err := s.NextQuestion(intPtr(100), nil, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Level() != questionbank.DifficultyHard {
		t.Fatalf("level = %s, want hard (clamped)", s.Level())
	}
}

func TestNextQuestion_LevelSticksWhenPoolExhausted(t *testing.T) {
	bank := testBank(t,
		questionbank.Question{ID: "m1", Text: "m", Category: questionbank.CategoryTeamwork, Difficulty: questionbank.DifficultyMedium},
	)
	s := New(bank, DefaultConfig())

	_, err := s.NextQuestion(intPtr(90), nil, "")
	var exhausted *questionbank.ErrExhaustedPool
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ErrExhaustedPool, got %v", err)
	}

	// The advance happened even though the draw failed.
	if s.Level() != questionbank.DifficultyHard {
		t.Fatalf("level = %s, want hard", s.Level())
	}
}
