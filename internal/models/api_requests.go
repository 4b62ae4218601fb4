package models

// SimulateMatchRequest is the optional body of POST /api/simulate-match.
// Fields that are missing or fail validation fall back to the configured defaults.
type SimulateMatchRequest struct {
	GameMode string `json:"game_mode" validate:"omitempty,max=64,printascii"`
	MapName  string `json:"map_name" validate:"omitempty,max=64,printascii"`
}

type SimulateMatchResponse struct {
	Success      bool    `json:"success"`
	MatchID      string  `json:"match_id"`
	OverallScore float64 `json:"overall_score"`
}

type StatusResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	MatchCount int    `json:"match_count"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
