package coach

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/skillbridge/internal/llm"
	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/rubric"
)

func testTemplates(t *testing.T) Templates {
	t.Helper()
	tmpl, err := LoadDefaultTemplates()
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	return tmpl
}

func scoredResult(t *testing.T, clarity, star, relevance int, issue string) rubric.ScoreResult {
	t.Helper()
	result, err := rubric.Default().Derive(map[string]int{
		rubric.DimClarity:       clarity,
		rubric.DimStarStructure: star,
		rubric.DimRelevance:     relevance,
	})
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	result.StructureIssue = issue
	return result
}

func TestParseCombined(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantCoaching string
		wantIdeal    string
	}{
		{
			"both sections",
			"COACHING:\nDo better.\n\nIDEAL_ANSWER:\nSituation: x.",
			"Do better.", "Situation: x.",
		},
		{
			"missing marker",
			"Just some prose without sections.",
			"", "",
		},
		{
			"empty sections",
			"COACHING:\n\nIDEAL_ANSWER:\n",
			"", "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coaching, ideal := parseCombined(tt.text)
			if coaching != tt.wantCoaching || ideal != tt.wantIdeal {
				t.Fatalf("parseCombined = (%q, %q), want (%q, %q)", coaching, ideal, tt.wantCoaching, tt.wantIdeal)
			}
		})
	}
}

func TestTemplateCoach_WeakestDimensionGuidance(t *testing.T) {
	c := NewTemplateCoach(rubric.Default(), testTemplates(t))
	q := questionbank.Question{ID: "q1", Text: "Tell me about a failure."}

	tests := []struct {
		name     string
		score    rubric.ScoreResult
		wantText string
	}{
		{"missing result", scoredResult(t, 80, 40, 70, "missing_result"), "measurable result"},
		{"missing action", scoredResult(t, 80, 40, 70, "missing_action"), "concrete actions"},
		{"weak clarity", scoredResult(t, 30, 80, 70, ""), "opening sentence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, err := c.Coach(context.Background(), q, "answer", tt.score)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(fb.ImprovementBullet, tt.wantText) {
				t.Fatalf("bullet %q does not mention %q", fb.ImprovementBullet, tt.wantText)
			}
			if fb.Coaching == "" || fb.PracticePrompt == "" || fb.IdealAnswer == "" {
				t.Fatal("feedback has empty slots")
			}
		})
	}
}

func TestTemplateCoach_UsesCuratedModelAnswer(t *testing.T) {
	c := NewTemplateCoach(rubric.Default(), testTemplates(t))

	q := questionbank.Question{ID: "q1", Text: "t", ModelAnswer: "A curated STAR answer."}
	fb, err := c.Coach(context.Background(), q, "answer", scoredResult(t, 50, 50, 50, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb.ModelAnswer != "A curated STAR answer." {
		t.Fatalf("model answer = %q, want the curated one", fb.ModelAnswer)
	}

	q.ModelAnswer = ""
	fb, err = c.Coach(context.Background(), q, "answer", scoredResult(t, 50, 50, 50, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(fb.ModelAnswer, "[Situation]") {
		t.Fatalf("expected STAR skeleton, got %q", fb.ModelAnswer)
	}
}

func TestLLMCoach_ParsesCombinedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("COACHING:\nYou answered by listing steps. Add a result.\n\nIDEAL_ANSWER:\nSituation: the deploy broke."),
	})
	c := NewLLMCoach(mock, rubric.Default(), testTemplates(t), DefaultConfig())
	q := questionbank.Question{ID: "q1", Text: "Tell me about a failure."}

	fb, err := c.Coach(context.Background(), q, "my answer", scoredResult(t, 80, 40, 70, "missing_result"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(fb.Coaching, "listing steps") {
		t.Fatalf("coaching = %q", fb.Coaching)
	}
	if !strings.Contains(fb.IdealAnswer, "deploy broke") {
		t.Fatalf("ideal answer = %q", fb.IdealAnswer)
	}
	if fb.ImprovementBullet == "" || fb.PracticePrompt == "" {
		t.Fatal("template slots must be filled alongside the LLM text")
	}
}

func TestLLMCoach_EmptyResponseFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("no sections here"),
	})
	c := NewLLMCoach(mock, rubric.Default(), testTemplates(t), DefaultConfig())
	q := questionbank.Question{ID: "q1", Text: "Tell me about a failure."}

	fb, err := c.Coach(context.Background(), q, "my answer", scoredResult(t, 80, 40, 70, "missing_result"))
	if err != nil {
		t.Fatalf("fallback should not error: %v", err)
	}
	if fb.Coaching == "" || fb.IdealAnswer == "" {
		t.Fatal("fallback feedback has empty slots")
	}
}

func TestLLMCoach_ProviderErrorSurfaces(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	c := NewLLMCoach(mock, rubric.Default(), testTemplates(t), DefaultConfig())
	q := questionbank.Question{ID: "q1", Text: "Tell me about a failure."}

	if _, err := c.Coach(context.Background(), q, "my answer", scoredResult(t, 80, 40, 70, "")); err == nil {
		t.Fatal("expected error")
	}
}
