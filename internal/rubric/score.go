package rubric

import (
	"fmt"
	"math"
)

// ScoreResult holds per-dimension sub-scores and the weighted total.
// The total is always derived from the sub-scores via Derive and is
// never stored independently of them.
type ScoreResult struct {
	// Scores maps dimension name to a sub-score in [0,100].
	Scores map[string]int `json:"scores"`

	// Total is round-half-up of the weight-sum of Scores, in [0,100].
	Total int `json:"total"`

	// Diagnostics holds an optional one-line note per dimension.
	Diagnostics map[string]string `json:"diagnostics,omitempty"`

	// StructureIssue names the detected STAR gap ("missing_result",
	// "missing_action") or is empty when the structure is complete.
	StructureIssue string `json:"structure_issue,omitempty"`
}

// Derive builds a ScoreResult from raw sub-scores. The scores must
// contain exactly the rubric's dimensions, each in [0,100]; anything
// else is rejected rather than repaired.
func (r Rubric) Derive(scores map[string]int) (ScoreResult, error) {
	if len(scores) != len(r.dims) {
		return ScoreResult{}, &ErrValidation{
			Reason: fmt.Sprintf("got %d sub-scores, rubric has %d dimensions", len(scores), len(r.dims)),
		}
	}

	sum := 0.0
	out := make(map[string]int, len(r.dims))
	for _, d := range r.dims {
		s, ok := scores[d.Name]
		if !ok {
			return ScoreResult{}, &ErrMissingDimension{Dimension: d.Name}
		}
		if s < 0 || s > 100 {
			return ScoreResult{}, &ErrValidation{
				Reason: fmt.Sprintf("sub-score %d for %q outside [0,100]", s, d.Name),
			}
		}
		out[d.Name] = s
		sum += float64(s) * d.Weight
	}

	return ScoreResult{
		Scores: out,
		Total:  roundHalfUp(sum),
	}, nil
}

// Score returns the sub-score for the named dimension, or 0 if absent.
func (s ScoreResult) Score(name string) int {
	return s.Scores[name]
}

// Weakest returns the dimension name with the lowest sub-score,
// breaking ties by rubric declaration order.
func (r Rubric) Weakest(s ScoreResult) string {
	weakest := ""
	low := math.MaxInt
	for _, d := range r.dims {
		if v, ok := s.Scores[d.Name]; ok && v < low {
			low = v
			weakest = d.Name
		}
	}
	return weakest
}

// roundHalfUp rounds to the nearest integer with .5 rounding away
// from zero toward the larger value, so 70.5 becomes 71.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
