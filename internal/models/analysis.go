package models

import "time"

// Priority ranks how urgently a recommendation should be addressed.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Recommendation is a single coaching tip produced by the rule engine.
type Recommendation struct {
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// AnalysisResult is the full (simulated) analysis of one match.
// It is written once to analysis.json and never mutated afterwards.
type AnalysisResult struct {
	MatchID         string           `json:"match_id"`
	AnalysisTime    time.Time        `json:"analysis_time"`
	Metrics         MetricSet        `json:"metrics"`
	Recommendations []Recommendation `json:"recommendations"`
	Summary         string           `json:"summary"`
}

// MatchMeta is the registry entry used to find an AnalysisResult later.
type MatchMeta struct {
	ID           string    `json:"id"`
	GameMode     string    `json:"game_mode"`
	MapName      string    `json:"map_name"`
	CreatedAt    time.Time `json:"created_at"`
	AnalysisFile string    `json:"analysis_file"`
}

// MatchHistoryEntry is one archived match in the history table
type MatchHistoryEntry struct {
	MatchID      string    `json:"match_id"`
	GameMode     string    `json:"game_mode"`
	MapName      string    `json:"map_name"`
	OverallScore float64   `json:"overall_score"`
	Rating       string    `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
}

// ScoreRow is a single metric score shipped to the analytics store.
type ScoreRow struct {
	MatchID    string
	GameMode   string
	MapName    string
	Category   Category
	Metric     string
	Score      float64
	RecordedAt time.Time
}

// ScoreRows flattens a result's metrics into analytics rows.
func ScoreRows(meta MatchMeta, result *AnalysisResult) []ScoreRow {
	var rows []ScoreRow
	for _, c := range ScoredCategories {
		for metric, score := range result.Metrics[c] {
			rows = append(rows, ScoreRow{
				MatchID:    meta.ID,
				GameMode:   meta.GameMode,
				MapName:    meta.MapName,
				Category:   c,
				Metric:     metric,
				Score:      score,
				RecordedAt: result.AnalysisTime,
			})
		}
	}
	return rows
}
