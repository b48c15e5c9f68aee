package evaluate

import "github.com/abhisek/skillbridge/internal/llm"

// ScoreSchema defines the JSON schema for LLM scoring responses.
var ScoreSchema = &llm.Schema{
	Name:        "answer-scores",
	Description: "Rubric sub-scores for a behavioral interview answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"clarity": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "How clear and concise the answer is, 0-100",
			},
			"star_structure": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "How completely the answer follows Situation/Task/Action/Result, 0-100",
			},
			"relevance": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "How directly the answer addresses the question, 0-100",
			},
			"structure_issue": map[string]any{
				"type":        "string",
				"enum":        []any{"", "missing_result", "missing_action"},
				"description": "The dominant STAR gap, or empty when the structure is complete",
			},
			"diagnostics": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"clarity": map[string]any{
						"type":        "string",
						"description": "One-line note on the clarity sub-score",
					},
					"star_structure": map[string]any{
						"type":        "string",
						"description": "One-line note on the structure sub-score",
					},
					"relevance": map[string]any{
						"type":        "string",
						"description": "One-line note on the relevance sub-score",
					},
				},
				"additionalProperties": false,
				"description":          "Short per-dimension notes for the coach",
			},
		},
		"required":             []any{"clarity", "star_structure", "relevance"},
		"additionalProperties": false,
	},
}
