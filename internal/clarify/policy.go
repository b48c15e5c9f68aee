// Package clarify decides when an answer needs one follow-up round and
// builds the follow-up prompt.
package clarify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/rubric"
)

// MergeSeparator joins the original answer and the clarification so the
// scoring oracle sees both parts with an explicit boundary.
const MergeSeparator = "\n\n[clarification]\n"

var (
	wordRe = regexp.MustCompile(`\w+`)

	// metricRe detects a numeric or measurable token: a bare number,
	// a percentage, or a number followed by a quantity unit.
	metricRe = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(?:%|percent|ms|seconds?|minutes?|hours?|days?|weeks?|people|users?|x\b)?`)
)

// Config holds the clarification trigger thresholds. Like the
// difficulty boundaries, these are product policy, not structure.
type Config struct {
	// MinWords is the floor below which an answer is too short.
	MinWords int

	// StarFloor is the star_structure sub-score below which the
	// structure is considered incomplete.
	StarFloor int
}

// DefaultConfig returns the standard thresholds: 100 words, STAR 50.
func DefaultConfig() Config {
	return Config{
		MinWords:  100,
		StarFloor: 50,
	}
}

// Policy applies the clarification triggers. At most one clarification
// round runs per question; the session engine enforces that via its
// pending-clarification flag and never consults the policy again after
// a round has been issued.
type Policy struct {
	cfg Config
}

// New creates a Policy with the given thresholds.
func New(cfg Config) *Policy {
	return &Policy{cfg: cfg}
}

// NeedsClarification reports whether the answer should trigger a
// follow-up: too short, STAR structure below the floor, or no numeric
// or measurable token anywhere in the text.
func (p *Policy) NeedsClarification(answer string, prelim rubric.ScoreResult) bool {
	if WordCount(answer) < p.cfg.MinWords {
		return true
	}
	if prelim.Score(rubric.DimStarStructure) < p.cfg.StarFloor {
		return true
	}
	return !HasMetricToken(answer)
}

// FollowUpPrompt builds the deterministic follow-up text for the given
// question. The detected structure issue steers the request; the
// original question is always restated so the candidate keeps context.
// No side effects.
func (p *Policy) FollowUpPrompt(q questionbank.Question, structureIssue string) string {
	var ask string
	switch structureIssue {
	case "missing_result":
		ask = "Can you add the measurable result you achieved (for example: reduced X by Y%)?"
	case "missing_action":
		ask = "Can you clarify the specific actions you personally took?"
	default:
		ask = "Could you briefly clarify the most important action you took and its measurable outcome?"
	}
	return fmt.Sprintf("Your answer to %q could use more detail. %s", q.Text, ask)
}

// Merge combines the original answer and the follow-up answer,
// original first, with an explicit separator. Neither part is dropped,
// even when empty.
func Merge(original, followup string) string {
	return original + MergeSeparator + followup
}

// WordCount counts word tokens the same way the scoring heuristics do.
func WordCount(text string) int {
	return len(wordRe.FindAllString(text, -1))
}

// HasMetricToken reports whether the text contains a numeric or
// measurable token.
func HasMetricToken(text string) bool {
	return metricRe.MatchString(strings.TrimSpace(text))
}
