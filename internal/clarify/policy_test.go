package clarify

import (
	"strings"
	"testing"

	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/rubric"
)

// longAnswer builds an answer of n words containing a metric token.
func longAnswer(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "word"
	}
	words[n-1] = "40%"
	return strings.Join(words, " ")
}

func goodScores() rubric.ScoreResult {
	return rubric.ScoreResult{
		Scores: map[string]int{
			rubric.DimClarity:       80,
			rubric.DimStarStructure: 90,
			rubric.DimRelevance:     70,
		},
		Total: 81,
	}
}

func TestNeedsClarification_Triggers(t *testing.T) {
	p := New(DefaultConfig())

	tests := []struct {
		name   string
		answer string
		prelim rubric.ScoreResult
		want   bool
	}{
		{"long structured answer passes", longAnswer(120), goodScores(), false},
		{"exactly at word floor passes", longAnswer(100), goodScores(), false},
		{"short answer triggers", longAnswer(99), goodScores(), true},
		{"weak structure triggers", longAnswer(120), rubric.ScoreResult{
			Scores: map[string]int{rubric.DimClarity: 80, rubric.DimStarStructure: 49, rubric.DimRelevance: 70},
		}, true},
		{"structure at floor passes", longAnswer(120), rubric.ScoreResult{
			Scores: map[string]int{rubric.DimClarity: 80, rubric.DimStarStructure: 50, rubric.DimRelevance: 70},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.NeedsClarification(tt.answer, tt.prelim); got != tt.want {
				t.Fatalf("NeedsClarification = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNeedsClarification_MissingMetricTriggers(t *testing.T) {
	p := New(DefaultConfig())

	words := make([]string, 120)
	for i := range words {
		words[i] = "word"
	}
	noMetric := strings.Join(words, " ")

	if !p.NeedsClarification(noMetric, goodScores()) {
		t.Fatal("expected clarification for an answer without any metric token")
	}
}

func TestFollowUpPrompt_ReflectsStructureIssue(t *testing.T) {
	p := New(DefaultConfig())
	q := questionbank.Question{ID: "q1", Text: "Tell me about a conflict you resolved."}

	tests := []struct {
		name  string
		issue string
		want  string
	}{
		{"missing result asks for outcome", "missing_result", "measurable result"},
		{"missing action asks for actions", "missing_action", "actions you personally took"},
		{"no issue asks generically", "", "measurable outcome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.FollowUpPrompt(q, tt.issue)
			if !strings.Contains(got, tt.want) {
				t.Fatalf("prompt %q does not mention %q", got, tt.want)
			}
			if !strings.Contains(got, q.Text) {
				t.Fatal("prompt does not restate the question")
			}
		})
	}
}

func TestFollowUpPrompt_Deterministic(t *testing.T) {
	p := New(DefaultConfig())
	q := questionbank.Question{ID: "q1", Text: "Tell me about a failure."}

	first := p.FollowUpPrompt(q, "missing_result")
	for range 5 {
		if got := p.FollowUpPrompt(q, "missing_result"); got != first {
			t.Fatal("prompt is not deterministic")
		}
	}
}

func TestMerge_KeepsBothPartsInOrder(t *testing.T) {
	got := Merge("original part", "clarifying part")

	want := "original part" + MergeSeparator + "clarifying part"
	if got != want {
		t.Fatalf("merge = %q, want %q", got, want)
	}
	if strings.Index(got, "original part") > strings.Index(got, "clarifying part") {
		t.Fatal("original must come before the clarification")
	}
}

func TestMerge_EmptyPartsPreserved(t *testing.T) {
	if got := Merge("", "only clarification"); got != MergeSeparator+"only clarification" {
		t.Fatalf("unexpected merge of empty original: %q", got)
	}
	if got := Merge("only original", ""); got != "only original"+MergeSeparator {
		t.Fatalf("unexpected merge of empty clarification: %q", got)
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"two words", 2},
		{"hyphen-ated counts as two", 5},
		{"numbers 42 count", 3},
	}
	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestHasMetricToken(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"reduced latency by 40%", true},
		{"saved 2 hours every week", true},
		{"served 10000 users", true},
		{"we improved things a lot", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := HasMetricToken(tt.text); got != tt.want {
			t.Errorf("HasMetricToken(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
