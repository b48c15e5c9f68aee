package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/report"
)

func testSummary() report.Summary {
	latest := 82
	improvement := 21
	return report.Summary{
		TotalAttempts:  5,
		AverageTotal:   71.4,
		ExcellentCount: 2,
		LatestTotal:    &latest,
		Improvement:    &improvement,
		ByCategory: map[questionbank.Category]report.CategoryStats{
			questionbank.CategoryLeadership: {Attempts: 3, AverageTotal: 74},
			questionbank.CategoryConflict:   {Attempts: 2, AverageTotal: 67.5},
		},
		DimensionAverages: map[string]float64{
			"clarity":        76,
			"star_structure": 58,
			"relevance":      81,
		},
		ClarificationCount: 1,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty summary view")
	}
	if !strings.Contains(view, "Questions: 5") {
		t.Error("expected attempt count in view")
	}
	if !strings.Contains(view, "star structure") {
		t.Error("expected dimension averages in view")
	}
	if !strings.Contains(view, "Focus next on star structure.") {
		t.Error("expected weakest dimension call-out in view")
	}
}

func TestSummaryScreen_EmptySession(t *testing.T) {
	s := New(report.Summary{})
	view := s.View(80, 24)
	if !strings.Contains(view, "No answers were recorded") {
		t.Error("expected empty-session message")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	hints := s.KeyHints()
	if len(hints) != 1 {
		t.Errorf("KeyHints length = %d, want 1", len(hints))
	}
}
