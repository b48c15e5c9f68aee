package rubric

import (
	"errors"
	"testing"
)

func TestNew_RejectsBadWeights(t *testing.T) {
	tests := []struct {
		name string
		dims []Dimension
	}{
		{"empty", nil},
		{"sum below one", []Dimension{{Name: "a", Weight: 0.5}, {Name: "b", Weight: 0.3}}},
		{"sum above one", []Dimension{{Name: "a", Weight: 0.7}, {Name: "b", Weight: 0.7}}},
		{"negative weight", []Dimension{{Name: "a", Weight: -0.5}, {Name: "b", Weight: 1.5}}},
		{"duplicate name", []Dimension{{Name: "a", Weight: 0.5}, {Name: "a", Weight: 0.5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.dims); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDefault_Weights(t *testing.T) {
	r := Default()

	want := map[string]float64{
		DimClarity:       0.40,
		DimStarStructure: 0.35,
		DimRelevance:     0.25,
	}
	for name, w := range want {
		if got := r.Weight(name); got != w {
			t.Errorf("weight(%s) = %v, want %v", name, got, w)
		}
	}
}

func TestDerive_WeightedTotal(t *testing.T) {
	r := Default()

	tests := []struct {
		name   string
		scores map[string]int
		want   int
	}{
		{"all zero", map[string]int{DimClarity: 0, DimStarStructure: 0, DimRelevance: 0}, 0},
		{"all hundred", map[string]int{DimClarity: 100, DimStarStructure: 100, DimRelevance: 100}, 100},
		{"mixed", map[string]int{DimClarity: 80, DimStarStructure: 60, DimRelevance: 40}, 63},
		{"rounds down below half", map[string]int{DimClarity: 81, DimStarStructure: 60, DimRelevance: 40}, 63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Derive(tt.scores)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Total != tt.want {
				t.Fatalf("total = %d, want %d", got.Total, tt.want)
			}
		})
	}
}

func TestDerive_HalfRoundsUp(t *testing.T) {
	r, err := New([]Dimension{
		{Name: "a", Weight: 0.5},
		{Name: "b", Weight: 0.5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 70*0.5 + 71*0.5 = 70.5, which must round to 71, not 70.
	got, err := r.Derive(map[string]int{"a": 70, "b": 71})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Total != 71 {
		t.Fatalf("total = %d, want 71", got.Total)
	}
}

func TestDerive_RejectsBadScores(t *testing.T) {
	r := Default()

	tests := []struct {
		name   string
		scores map[string]int
	}{
		{"missing dimension", map[string]int{DimClarity: 50, DimStarStructure: 50}},
		{"extra dimension", map[string]int{DimClarity: 50, DimStarStructure: 50, DimRelevance: 50, "grit": 50}},
		{"wrong dimension", map[string]int{DimClarity: 50, DimStarStructure: 50, "grit": 50}},
		{"below range", map[string]int{DimClarity: -1, DimStarStructure: 50, DimRelevance: 50}},
		{"above range", map[string]int{DimClarity: 101, DimStarStructure: 50, DimRelevance: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Derive(tt.scores); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDerive_MissingDimensionError(t *testing.T) {
	r := Default()

	_, err := r.Derive(map[string]int{DimClarity: 50, DimStarStructure: 50, "grit": 50})
	var missing *ErrMissingDimension
	if !errors.As(err, &missing) {
		t.Fatalf("expected ErrMissingDimension, got %T", err)
	}
	if missing.Dimension != DimRelevance {
		t.Fatalf("missing dimension = %q, want %q", missing.Dimension, DimRelevance)
	}
}

func TestWeakest_TieBreaksByDeclarationOrder(t *testing.T) {
	r := Default()

	s, err := r.Derive(map[string]int{DimClarity: 40, DimStarStructure: 40, DimRelevance: 80})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Weakest(s); got != DimClarity {
		t.Fatalf("weakest = %q, want %q", got, DimClarity)
	}
}
