// Package evaluate scores answers against the rubric, either with an
// LLM oracle or with deterministic offline heuristics.
package evaluate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/skillbridge/internal/llm"
	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/rubric"
)

// Config bounds a single scoring call.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard scoring limits.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.2,
	}
}

// LLMScorer scores answers using an LLM provider.
type LLMScorer struct {
	provider llm.Provider
	rubric   rubric.Rubric
	config   Config
}

// NewLLMScorer creates a scorer backed by the given provider.
func NewLLMScorer(provider llm.Provider, r rubric.Rubric, cfg Config) *LLMScorer {
	return &LLMScorer{provider: provider, rubric: r, config: cfg}
}

// scoreOutput is the raw LLM response before rubric validation.
type scoreOutput struct {
	Clarity        int               `json:"clarity"`
	StarStructure  int               `json:"star_structure"`
	Relevance      int               `json:"relevance"`
	StructureIssue string            `json:"structure_issue"`
	Diagnostics    map[string]string `json:"diagnostics"`
}

// Score evaluates one answer. The total is always derived locally from
// the sub-scores; the model never reports a total.
func (s *LLMScorer) Score(ctx context.Context, q questionbank.Question, answer string) (rubric.ScoreResult, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeScoring)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(q, answer)},
		},
		Schema:      ScoreSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return rubric.ScoreResult{}, fmt.Errorf("LLM scoring failed: %w", err)
	}

	var raw scoreOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return rubric.ScoreResult{}, fmt.Errorf("failed to parse scoring response: %w", err)
	}

	result, err := s.rubric.Derive(map[string]int{
		rubric.DimClarity:       raw.Clarity,
		rubric.DimStarStructure: raw.StarStructure,
		rubric.DimRelevance:     raw.Relevance,
	})
	if err != nil {
		return rubric.ScoreResult{}, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}

	result.StructureIssue = raw.StructureIssue
	result.Diagnostics = raw.Diagnostics
	return result, nil
}
