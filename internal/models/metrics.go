package models

import (
	"fmt"
	"math"
	"sort"
)

// Category groups related metrics. General is only used for recommendations
// that do not belong to a scored category.
type Category string

const (
	CategoryAim            Category = "aim"
	CategoryPositioning    Category = "positioning"
	CategoryDecisionMaking Category = "decision_making"
	CategoryGeneral        Category = "general"
)

// ScoredCategories lists the categories of a MetricSet in their canonical order.
// Tie-breaking in summaries follows this order.
var ScoredCategories = []Category{CategoryAim, CategoryPositioning, CategoryDecisionMaking}

// DisplayName returns the human-readable label used in summary text.
func (c Category) DisplayName() string {
	switch c {
	case CategoryAim:
		return "Aim"
	case CategoryPositioning:
		return "Positioning"
	case CategoryDecisionMaking:
		return "Decision Making"
	case CategoryGeneral:
		return "General"
	}
	return string(c)
}

// Valid reports whether c is one of the scored categories.
func (c Category) Valid() bool {
	for _, s := range ScoredCategories {
		if c == s {
			return true
		}
	}
	return false
}

// meanPrecision bounds the float error of a summed mean. Scores carry two
// decimals, so a mean of 0.70 must compare equal to the 0.7 threshold.
const meanPrecision = 1e6

func roundMean(v float64) float64 {
	return math.Round(v*meanPrecision) / meanPrecision
}

// MetricSet maps category -> metric name -> score in [0,1].
type MetricSet map[Category]map[string]float64

// CategoryMean returns the arithmetic mean of a category's metric values.
// Metrics are summed in name order so the result does not depend on map iteration.
func (m MetricSet) CategoryMean(c Category) (float64, error) {
	values := m[c]
	if len(values) == 0 {
		return 0, fmt.Errorf("category %q: %w", c, ErrEmptyCategory)
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var sum float64
	for _, name := range names {
		sum += values[name]
	}
	return roundMean(sum / float64(len(values))), nil
}

// CategoryMeans returns the mean of every scored category, in canonical order.
func (m MetricSet) CategoryMeans() ([]CategoryScore, error) {
	scores := make([]CategoryScore, 0, len(ScoredCategories))
	for _, c := range ScoredCategories {
		mean, err := m.CategoryMean(c)
		if err != nil {
			return nil, err
		}
		scores = append(scores, CategoryScore{Category: c, Mean: mean})
	}
	return scores, nil
}

// Overall is the mean of the three category means.
func (m MetricSet) Overall() (float64, error) {
	scores, err := m.CategoryMeans()
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, s := range scores {
		sum += s.Mean
	}
	return roundMean(sum / float64(len(scores))), nil
}

// CategoryScore pairs a category with its mean score.
type CategoryScore struct {
	Category Category `json:"category"`
	Mean     float64  `json:"mean"`
}
