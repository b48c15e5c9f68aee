package evaluate

import (
	"context"
	"regexp"
	"strings"

	"github.com/abhisek/skillbridge/internal/clarify"
	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/rubric"
)

var (
	fillerRe = regexp.MustCompile(`(?i)\b(um|uh|like|you know|basically|actually)\b`)

	// resultPhraseRe matches measurable-outcome language: a percentage,
	// a quantity with a unit, or an impact verb stem.
	resultPhraseRe = regexp.MustCompile(`(?i)\d+%|\d+\s+(seconds|ms|minutes|hours|days|people|users)|\b(reduc|increas|improv|save|boost)`)

	wordRe = regexp.MustCompile(`\w+`)
)

var actionVerbs = []string{
	"implemented", "designed", "built", "created", "led", "refactored",
	"optimized", "deployed", "tested", "wrote", "improved",
}

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"to": true, "of": true, "in": true, "on": true, "for": true,
	"with": true, "is": true, "it": true, "that": true,
}

// HeuristicScorer scores answers with deterministic text heuristics.
// It needs no network and backs the offline mode and the preliminary
// pass in tests.
type HeuristicScorer struct {
	rubric rubric.Rubric
}

// NewHeuristicScorer creates a scorer over the given rubric.
func NewHeuristicScorer(r rubric.Rubric) *HeuristicScorer {
	return &HeuristicScorer{rubric: r}
}

// Score evaluates one answer. The same answer always produces the same
// result.
func (s *HeuristicScorer) Score(_ context.Context, q questionbank.Question, answer string) (rubric.ScoreResult, error) {
	clarity := scoreClarity(answer)
	star, issue := scoreStructure(answer)
	relevance := scoreRelevance(q.Text, answer)

	result, err := s.rubric.Derive(map[string]int{
		rubric.DimClarity:       clarity,
		rubric.DimStarStructure: star,
		rubric.DimRelevance:     relevance,
	})
	if err != nil {
		return rubric.ScoreResult{}, err
	}

	result.StructureIssue = issue
	result.Diagnostics = map[string]string{
		rubric.DimClarity:       clarityDiagnostic(clarity),
		rubric.DimStarStructure: structureDiagnostic(issue),
		rubric.DimRelevance:     relevanceDiagnostic(relevance),
	}
	return result, nil
}

// scoreClarity rewards length up to a cap and penalizes filler words.
func scoreClarity(text string) int {
	wc := clarify.WordCount(text)
	if wc == 0 {
		return 0
	}
	base := 20 + wc*4
	if base > 100 {
		base = 100
	}
	fillers := len(fillerRe.FindAllString(text, -1))
	score := base - fillers*6
	if score < 0 {
		score = 0
	}
	return score
}

// scoreStructure detects whether the answer names an action and a
// result, returning the sub-score and the dominant gap.
func scoreStructure(text string) (int, string) {
	if text == "" {
		return 0, "missing_action"
	}
	lower := strings.ToLower(text)

	hasAction := containsActionWords(text) ||
		containsAny(lower, "action", "did", "responsible", "implemented", "led")
	hasResult := resultPhraseRe.MatchString(text) ||
		containsAny(lower, "result", "outcome", "reduced", "improved", "increased")

	switch {
	case hasAction && hasResult:
		return 90, ""
	case hasAction:
		return 55, "missing_result"
	case hasResult:
		return 50, "missing_action"
	case clarify.WordCount(text) < 12:
		return 30, "missing_action"
	default:
		return 45, "missing_action"
	}
}

// scoreRelevance measures stopword-filtered keyword overlap between
// question and answer.
func scoreRelevance(question, answer string) int {
	if question == "" || answer == "" {
		return 0
	}

	qWords := keywordSet(question)
	if len(qWords) == 0 {
		return 50
	}
	aWords := keywordSet(answer)

	overlap := 0
	for w := range qWords {
		if aWords[w] {
			overlap++
		}
	}
	ratio := float64(overlap) / float64(len(qWords))
	score := int(ratio * 100)
	if score > 100 {
		score = 100
	}
	return score
}

func keywordSet(text string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if !stopwords[w] {
			out[w] = true
		}
	}
	return out
}

func containsActionWords(text string) bool {
	lower := strings.ToLower(text)
	for _, v := range actionVerbs {
		if containsWord(lower, v) {
			return true
		}
	}
	return false
}

func containsAny(lower string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// containsWord reports whether lower contains w on word boundaries.
func containsWord(lower, w string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], w)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(w)
		beforeOK := start == 0 || !isWordByte(lower[start-1])
		afterOK := end == len(lower) || !isWordByte(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func clarityDiagnostic(score int) string {
	switch {
	case score < 35:
		return "Response is unclear or verbose; remove filler, use short sentences."
	case score < 70:
		return "Mostly clear; tighten the conclusion and avoid ambiguous terms."
	default:
		return "Clear and concise."
	}
}

func structureDiagnostic(issue string) string {
	switch issue {
	case "missing_result":
		return "STAR is missing the Result: add a measurable outcome."
	case "missing_action":
		return "STAR is missing the Action: describe what you did."
	default:
		return "STAR present with Situation, Task, Action and Result."
	}
}

func relevanceDiagnostic(score int) string {
	switch {
	case score < 35:
		return "Answer drifts from the question; focus on the asked problem."
	case score < 70:
		return "Generally relevant but include specific examples."
	default:
		return "Directly addresses the question with relevant details."
	}
}
