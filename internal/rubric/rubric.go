package rubric

import (
	"fmt"
	"math"
)

// Dimension names used across the scoring pipeline. The set is closed:
// every ScoringOracle response must contain exactly these keys.
const (
	DimClarity       = "clarity"
	DimStarStructure = "star_structure"
	DimRelevance     = "relevance"
)

// weightSumTolerance absorbs float accumulation error when checking
// that weights sum to 1.0.
const weightSumTolerance = 1e-9

// Dimension is a named rubric axis with its contribution weight.
type Dimension struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Rubric is the validated, immutable scoring configuration.
// It is created once at startup and passed by value to every component
// that derives totals; it is never mutated afterwards.
type Rubric struct {
	dims []Dimension
}

// New builds a Rubric from the given dimensions, validating the weight
// invariants: every weight in [0,1], weights summing to 1.0, no
// duplicate or empty names.
func New(dims []Dimension) (Rubric, error) {
	if len(dims) == 0 {
		return Rubric{}, &ErrValidation{Reason: "rubric has no dimensions"}
	}

	seen := make(map[string]bool, len(dims))
	sum := 0.0
	for _, d := range dims {
		if d.Name == "" {
			return Rubric{}, &ErrValidation{Reason: "rubric dimension with empty name"}
		}
		if seen[d.Name] {
			return Rubric{}, &ErrValidation{Reason: fmt.Sprintf("duplicate rubric dimension %q", d.Name)}
		}
		seen[d.Name] = true
		if d.Weight < 0 || d.Weight > 1 {
			return Rubric{}, &ErrValidation{
				Reason: fmt.Sprintf("dimension %q weight %v outside [0,1]", d.Name, d.Weight),
			}
		}
		sum += d.Weight
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return Rubric{}, &ErrValidation{Reason: fmt.Sprintf("rubric weights sum to %v, want 1.0", sum)}
	}

	out := make([]Dimension, len(dims))
	copy(out, dims)
	return Rubric{dims: out}, nil
}

// Default returns the standard behavioral-interview rubric:
// clarity 0.40, star_structure 0.35, relevance 0.25.
func Default() Rubric {
	r, err := New([]Dimension{
		{Name: DimClarity, Weight: 0.40},
		{Name: DimStarStructure, Weight: 0.35},
		{Name: DimRelevance, Weight: 0.25},
	})
	if err != nil {
		// The default rubric is a compile-time constant in all but syntax.
		panic(err)
	}
	return r
}

// Dimensions returns a copy of the rubric's dimensions in declaration order.
func (r Rubric) Dimensions() []Dimension {
	out := make([]Dimension, len(r.dims))
	copy(out, r.dims)
	return out
}

// DimensionNames returns the dimension names in declaration order.
func (r Rubric) DimensionNames() []string {
	names := make([]string, len(r.dims))
	for i, d := range r.dims {
		names[i] = d.Name
	}
	return names
}

// Weight returns the weight for the named dimension, or 0 if unknown.
func (r Rubric) Weight(name string) float64 {
	for _, d := range r.dims {
		if d.Name == name {
			return d.Weight
		}
	}
	return 0
}
