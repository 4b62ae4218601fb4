package logic

import (
	"fmt"
	"strings"

	"github.com/openmohaa/coach-api/internal/models"
)

type keywordAdvice struct {
	keyword string
	advice  string
}

var gameModeAdvice = []keywordAdvice{
	{"battle royale", "For Battle Royale, prioritize positioning and zone awareness over aggressive engagements."},
	{"team deathmatch", "In Team Deathmatch, work on quicker reaction times and maintaining high ground control."},
}

var mapAdvice = []keywordAdvice{
	{"erangel", "On Erangel, use natural terrain for cover during zone rotations."},
	{"miramar", "On Miramar, high ground control is essential for spotting enemies at long distances."},
	{"sanhok", "On Sanhok, quick reflexes and close-combat skills are more important than long-range engagements."},
}

var categoryInsights = map[models.Category]string{
	models.CategoryAim:            "Your aim mechanics need work. Focus on practicing recoil control and crosshair placement.",
	models.CategoryPositioning:    "Your positioning could be improved. Pay attention to using cover and zone awareness.",
	models.CategoryDecisionMaking: "Your decision-making needs refinement. Consider when to engage and how to manage resources.",
}

const insightThreshold = 0.6

// matchAdvice returns the advice of the first keyword contained in s, case-insensitively.
func matchAdvice(table []keywordAdvice, s string) (string, bool) {
	s = strings.ToLower(s)
	for _, ka := range table {
		if strings.Contains(s, ka.keyword) {
			return ka.advice, true
		}
	}
	return "", false
}

// Rating maps an overall score to a qualitative label.
func Rating(overall float64) string {
	switch {
	case overall < 0.4:
		return "Beginner"
	case overall < 0.6:
		return "Intermediate"
	case overall < 0.8:
		return "Advanced"
	default:
		return "Expert"
	}
}

// strongestWeakest picks argmax and argmin by mean. Strict comparisons keep
// the first category in canonical order on ties.
func strongestWeakest(scores []models.CategoryScore) (strongest, weakest models.CategoryScore) {
	strongest, weakest = scores[0], scores[0]
	for _, s := range scores[1:] {
		if s.Mean > strongest.Mean {
			strongest = s
		}
		if s.Mean < weakest.Mean {
			weakest = s
		}
	}
	return strongest, weakest
}

// Summarize builds the free-text summary for an analysis.
func Summarize(metrics models.MetricSet, recs []models.Recommendation, gameMode, mapName string) (string, error) {
	scores, err := metrics.CategoryMeans()
	if err != nil {
		return "", err
	}
	overall, err := metrics.Overall()
	if err != nil {
		return "", err
	}
	strongest, weakest := strongestWeakest(scores)

	var b strings.Builder
	fmt.Fprintf(&b, "Overall Rating: %s (%.2f/1.0)\n\n", Rating(overall), overall)
	fmt.Fprintf(&b, "Your strongest area is %s (%.2f/1.0), while %s (%.2f/1.0) needs the most improvement.",
		strongest.Category.DisplayName(), strongest.Mean,
		weakest.Category.DisplayName(), weakest.Mean)

	if advice, ok := matchAdvice(gameModeAdvice, gameMode); ok {
		b.WriteString(" " + advice)
	}
	if advice, ok := matchAdvice(mapAdvice, mapName); ok {
		b.WriteString(" " + advice)
	}
	b.WriteString("\n")

	insights := false
	for _, s := range scores {
		if s.Mean < insightThreshold {
			if !insights {
				b.WriteString("\n")
				insights = true
			}
			b.WriteString(categoryInsights[s.Category] + "\n")
		}
	}

	first := true
	for _, rec := range recs {
		if rec.Priority != models.PriorityHigh {
			continue
		}
		if first {
			b.WriteString("\nPriority areas to address:\n")
			first = false
		}
		fmt.Fprintf(&b, "- %s: %s\n", rec.Title, rec.Description)
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
