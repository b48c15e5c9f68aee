package questionbank

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestDifficulty_AdvanceRetreatClamp(t *testing.T) {
	tests := []struct {
		name string
		got  Difficulty
		want Difficulty
	}{
		{"easy advances to medium", DifficultyEasy.Advance(), DifficultyMedium},
		{"medium advances to hard", DifficultyMedium.Advance(), DifficultyHard},
		{"hard stays hard", DifficultyHard.Advance(), DifficultyHard},
		{"hard retreats to medium", DifficultyHard.Retreat(), DifficultyMedium},
		{"medium retreats to easy", DifficultyMedium.Retreat(), DifficultyEasy},
		{"easy stays easy", DifficultyEasy.Retreat(), DifficultyEasy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestLoad_RejectsMalformedCorpus(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"empty corpus", `[]`},
		{"not json", `{{{`},
		{"missing id", `[{"text":"q","category":"teamwork","difficulty":"easy"}]`},
		{"missing text", `[{"id":"q1","category":"teamwork","difficulty":"easy"}]`},
		{"unknown category", `[{"id":"q1","text":"q","category":"trivia","difficulty":"easy"}]`},
		{"unknown difficulty", `[{"id":"q1","text":"q","category":"teamwork","difficulty":"brutal"}]`},
		{"duplicate id", `[
			{"id":"q1","text":"a","category":"teamwork","difficulty":"easy"},
			{"id":"q1","text":"b","category":"conflict","difficulty":"hard"}
		]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.json), testRNG())
			var verr *ErrValidation
			if !errors.As(err, &verr) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestLoad_OneBadRecordAbortsAll(t *testing.T) {
	corpus := `[
		{"id":"q1","text":"a","category":"teamwork","difficulty":"easy"},
		{"id":"q2","text":"b","category":"trivia","difficulty":"easy"}
	]`
	if _, err := Load(strings.NewReader(corpus), testRNG()); err == nil {
		t.Fatal("expected load to abort on the bad record")
	}
}

func TestDraw_ExcludesUsedIDs(t *testing.T) {
	bank := New([]Question{
		{ID: "q1", Text: "a", Category: CategoryTeamwork, Difficulty: DifficultyEasy},
		{ID: "q2", Text: "b", Category: CategoryConflict, Difficulty: DifficultyEasy},
	}, testRNG())

	used := map[string]bool{"q1": true}
	q, err := bank.Draw(DifficultyEasy, used, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ID != "q2" {
		t.Fatalf("drew excluded question %q", q.ID)
	}
}

func TestDraw_ExhaustedPool(t *testing.T) {
	bank := New([]Question{
		{ID: "q1", Text: "a", Category: CategoryTeamwork, Difficulty: DifficultyEasy},
	}, testRNG())

	_, err := bank.Draw(DifficultyEasy, map[string]bool{"q1": true}, "")
	var exhausted *ErrExhaustedPool
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ErrExhaustedPool, got %v", err)
	}
	if exhausted.Difficulty != DifficultyEasy {
		t.Fatalf("exhausted at %s, want easy", exhausted.Difficulty)
	}
}

func TestDraw_DoesNotWidenDifficulty(t *testing.T) {
	bank := New([]Question{
		{ID: "q1", Text: "a", Category: CategoryTeamwork, Difficulty: DifficultyHard},
	}, testRNG())

	if _, err := bank.Draw(DifficultyEasy, nil, ""); err == nil {
		t.Fatal("expected exhausted pool instead of widening to hard")
	}
}

func TestDraw_PrefersCategory(t *testing.T) {
	bank := New([]Question{
		{ID: "q1", Text: "a", Category: CategoryTeamwork, Difficulty: DifficultyEasy},
		{ID: "q2", Text: "b", Category: CategoryConflict, Difficulty: DifficultyEasy},
		{ID: "q3", Text: "c", Category: CategoryTeamwork, Difficulty: DifficultyEasy},
	}, testRNG())

	for range 10 {
		q, err := bank.Draw(DifficultyEasy, nil, CategoryTeamwork)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Category != CategoryTeamwork {
			t.Fatalf("drew %s question despite teamwork preference", q.Category)
		}
	}
}

func TestDraw_CategoryPreferenceIsBestEffort(t *testing.T) {
	bank := New([]Question{
		{ID: "q1", Text: "a", Category: CategoryConflict, Difficulty: DifficultyEasy},
	}, testRNG())

	q, err := bank.Draw(DifficultyEasy, nil, CategoryTeamwork)
	if err != nil {
		t.Fatalf("expected best-effort fallback, got error: %v", err)
	}
	if q.ID != "q1" {
		t.Fatalf("unexpected question %q", q.ID)
	}
}

func TestLoadDefault_EmbeddedCorpus(t *testing.T) {
	bank, err := LoadDefault(testRNG())
	if err != nil {
		t.Fatalf("embedded corpus failed to load: %v", err)
	}
	if bank.Len() == 0 {
		t.Fatal("embedded corpus is empty")
	}
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if bank.CountAt(d) == 0 {
			t.Errorf("no questions at difficulty %s", d)
		}
	}
}
