// Package coach turns a scored answer into actionable feedback: a
// personalized coaching paragraph, the single highest-impact fix, a
// practice prompt and an ideal reference answer.
package coach

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/skillbridge/internal/llm"
	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/rubric"
	"github.com/abhisek/skillbridge/internal/session"
)

// Config bounds a single coaching call. The temperature runs hotter
// than scoring: coaching text should read naturally, not uniformly.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard coaching limits.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// LLMCoach produces feedback with one combined LLM call for the
// coaching paragraph and the ideal answer. The improvement bullet,
// practice prompt and model answer are always filled from templates.
type LLMCoach struct {
	provider  llm.Provider
	rubric    rubric.Rubric
	templates Templates
	config    Config
}

// NewLLMCoach creates a coach backed by the given provider.
func NewLLMCoach(provider llm.Provider, r rubric.Rubric, t Templates, cfg Config) *LLMCoach {
	return &LLMCoach{provider: provider, rubric: r, templates: t, config: cfg}
}

// Coach generates feedback for a scored answer. A transport failure is
// returned to the caller; a malformed or empty model response degrades
// to template text without an error.
func (c *LLMCoach) Coach(ctx context.Context, q questionbank.Question, answer string, score rubric.ScoreResult) (session.Feedback, error) {
	weakest := c.rubric.Weakest(score)
	fb := baseFeedback(c.templates, q, score, weakest)

	ctx = llm.WithPurpose(ctx, llm.PurposeCoaching)
	req := llm.Request{
		System: coachSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildCoachMessage(q, answer, score)},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return session.Feedback{}, fmt.Errorf("LLM coaching failed: %w", err)
	}

	coaching, ideal := parseCombined(string(resp.Content))
	if coaching == "" {
		coaching = fallbackCoaching(score, weakest)
	}
	if ideal == "" {
		ideal = fallbackIdealAnswer()
	}

	fb.Coaching = coaching
	fb.IdealAnswer = ideal
	return fb, nil
}

// TemplateCoach produces fully deterministic feedback with no network.
// It backs the offline mode.
type TemplateCoach struct {
	rubric    rubric.Rubric
	templates Templates
}

// NewTemplateCoach creates an offline coach.
func NewTemplateCoach(r rubric.Rubric, t Templates) *TemplateCoach {
	return &TemplateCoach{rubric: r, templates: t}
}

// Coach never fails. The same score always produces the same feedback.
func (c *TemplateCoach) Coach(_ context.Context, q questionbank.Question, _ string, score rubric.ScoreResult) (session.Feedback, error) {
	weakest := c.rubric.Weakest(score)
	fb := baseFeedback(c.templates, q, score, weakest)
	fb.Coaching = fallbackCoaching(score, weakest)
	fb.IdealAnswer = fallbackIdealAnswer()
	return fb, nil
}

// baseFeedback fills the template-driven slots shared by both coaches.
func baseFeedback(t Templates, q questionbank.Question, score rubric.ScoreResult, weakest string) session.Feedback {
	bullets := t.General.ImprovementBullets
	prompts := t.General.PracticePrompts

	var improvement, practice string
	switch {
	case weakest == rubric.DimStarStructure && score.StructureIssue == "missing_result":
		improvement = bullets["missing_result"]
		practice = prompts["improve_result"]
	case weakest == rubric.DimStarStructure:
		improvement = bullets["missing_action"]
		practice = prompts["add_action"]
	default:
		improvement = bullets["unclear"]
		practice = prompts["clarify"]
	}

	modelAnswer := q.ModelAnswer
	if modelAnswer == "" {
		modelAnswer = t.skeletonModelAnswer()
	}

	return session.Feedback{
		ImprovementBullet: improvement,
		PracticePrompt:    practice,
		ModelAnswer:       modelAnswer,
	}
}

const coachSystemPrompt = `You are an expert interview coach. Provide TWO outputs.

1. PERSONALIZED COACHING in this format:
   "You answered by [summarize]. However, [main weakness]. Next time when facing [type], try answering like this: [specific guidance]. This is good interview practice because [why]."
   Be specific, reference the candidate's actual answer, keep a supportive tone, 4-6 sentences.

2. IDEAL STAR ANSWER: a complete Situation/Task/Action/Result answer for this question with a measurable result.

Respond exactly in this layout:
COACHING:
[your personalized coaching here]

IDEAL_ANSWER:
[your ideal STAR answer here]`

func buildCoachMessage(q questionbank.Question, answer string, score rubric.ScoreResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "QUESTION: %s\n\n", q.Text)
	fmt.Fprintf(&b, "CANDIDATE'S ANSWER:\n%s\n\n", answer)
	fmt.Fprintf(&b, "SCORES: Clarity=%d/100, STAR=%d/100, Relevance=%d/100\n",
		score.Score(rubric.DimClarity),
		score.Score(rubric.DimStarStructure),
		score.Score(rubric.DimRelevance),
	)
	fmt.Fprintf(&b, "ISSUES: Clarity: %s. Structure: %s. Relevance: %s.\n",
		diagnosticOr(score, rubric.DimClarity),
		diagnosticOr(score, rubric.DimStarStructure),
		diagnosticOr(score, rubric.DimRelevance),
	)

	return b.String()
}

func diagnosticOr(score rubric.ScoreResult, dim string) string {
	if d, ok := score.Diagnostics[dim]; ok && d != "" {
		return d
	}
	return "N/A"
}

// parseCombined splits the combined response on its section markers.
// A missing IDEAL_ANSWER marker yields two empty strings so the caller
// falls back to templates for both parts.
func parseCombined(text string) (coaching, ideal string) {
	parts := strings.SplitN(text, "IDEAL_ANSWER:", 2)
	if len(parts) != 2 {
		return "", ""
	}
	coaching = strings.TrimSpace(strings.Replace(parts[0], "COACHING:", "", 1))
	ideal = strings.TrimSpace(parts[1])
	return coaching, ideal
}
