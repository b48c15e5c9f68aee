// Package report aggregates recorded attempts into session statistics.
// Building a report never mutates attempts; the same slice always
// yields the same summary.
package report

import (
	"github.com/abhisek/skillbridge/internal/questionbank"
	"github.com/abhisek/skillbridge/internal/session"
)

// ExcellentThreshold is the total score at or above which an attempt
// counts as excellent. It matches the difficulty advance boundary.
const ExcellentThreshold = 75

// CategoryStats aggregates attempts within one question category.
type CategoryStats struct {
	Attempts     int
	AverageTotal float64
}

// Summary is the aggregate view of a set of attempts.
type Summary struct {
	TotalAttempts  int
	AverageTotal   float64
	ExcellentCount int

	// LatestTotal and Improvement are nil when there are no attempts.
	// Improvement is the latest total minus the first.
	LatestTotal *int
	Improvement *int

	ClarificationCount int
	DegradedCount      int

	ByCategory        map[questionbank.Category]CategoryStats
	DimensionAverages map[string]float64
}

// Build computes the summary for the given attempts in recording order.
func Build(attempts []session.Attempt) Summary {
	s := Summary{
		TotalAttempts:     len(attempts),
		ByCategory:        make(map[questionbank.Category]CategoryStats),
		DimensionAverages: make(map[string]float64),
	}
	if len(attempts) == 0 {
		return s
	}

	totalSum := 0
	catSums := make(map[questionbank.Category]int)
	dimSums := make(map[string]int)
	dimCounts := make(map[string]int)

	for _, a := range attempts {
		totalSum += a.Score.Total
		if a.Score.Total >= ExcellentThreshold {
			s.ExcellentCount++
		}
		if a.ClarificationUsed {
			s.ClarificationCount++
		}
		if a.CoachingDegraded {
			s.DegradedCount++
		}

		cs := s.ByCategory[a.Category]
		cs.Attempts++
		s.ByCategory[a.Category] = cs
		catSums[a.Category] += a.Score.Total

		for dim, v := range a.Score.Scores {
			dimSums[dim] += v
			dimCounts[dim]++
		}
	}

	s.AverageTotal = float64(totalSum) / float64(len(attempts))

	for cat, cs := range s.ByCategory {
		cs.AverageTotal = float64(catSums[cat]) / float64(cs.Attempts)
		s.ByCategory[cat] = cs
	}
	for dim, sum := range dimSums {
		s.DimensionAverages[dim] = float64(sum) / float64(dimCounts[dim])
	}

	latest := attempts[len(attempts)-1].Score.Total
	s.LatestTotal = &latest

	// Improvement needs a first and a last answer to compare.
	if len(attempts) >= 2 {
		improvement := latest - attempts[0].Score.Total
		s.Improvement = &improvement
	}

	return s
}

// Weakest returns the dimension with the lowest average, breaking ties
// alphabetically. Empty when there are no attempts.
func (s Summary) Weakest() string {
	weakest := ""
	low := 0.0
	for dim, avg := range s.DimensionAverages {
		if weakest == "" || avg < low || (avg == low && dim < weakest) {
			weakest = dim
			low = avg
		}
	}
	return weakest
}
