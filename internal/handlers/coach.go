package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/openmohaa/coach-api/internal/logic"
	"github.com/openmohaa/coach-api/internal/models"
)

// SimulateMatch runs a simulated analysis and registers the match
// @Summary Simulate Match Analysis
// @Description Generates randomly simulated metrics for a match and analyzes them. Missing or invalid fields fall back to defaults.
// @Tags Coach
// @Accept json
// @Produce json
// @Param body body models.SimulateMatchRequest false "Match options"
// @Success 200 {object} models.SimulateMatchResponse
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /simulate-match [post]
func (h *Handler) SimulateMatch(w http.ResponseWriter, r *http.Request) {
	var req models.SimulateMatchRequest
	body := http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warnw("Unreadable simulate-match body, using defaults", "error", err)
		req = models.SimulateMatchRequest{}
	}

	resp, err := h.coach.SimulateMatch(r.Context(), req)
	if err != nil {
		h.logger.Errorw("Failed to simulate match", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to simulate match: "+err.Error())
		return
	}

	h.jsonResponse(w, http.StatusOK, resp)
}

// GetAnalysis returns the stored analysis for a match
// @Summary Get Match Analysis
// @Tags Coach
// @Produce json
// @Param matchId path string true "Match ID"
// @Success 200 {object} models.AnalysisResult
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /analysis/{matchId} [get]
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchId")

	analysis, err := h.coach.GetAnalysis(r.Context(), matchID)
	if errors.Is(err, models.ErrMatchNotFound) {
		h.errorResponse(w, http.StatusNotFound, "Match not found")
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to load analysis", "error", err, "match_id", matchID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load analysis: "+err.Error())
		return
	}

	h.jsonResponse(w, http.StatusOK, analysis)
}

// ClearMatches removes every registered match and its files
// @Summary Clear Matches
// @Tags Coach
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /clear-matches [post]
func (h *Handler) ClearMatches(w http.ResponseWriter, r *http.Request) {
	if err := h.coach.ClearMatches(r.Context()); err != nil {
		h.logger.Errorw("Failed to clear matches", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.jsonResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// ListMatches returns the match registry
// @Summary List Matches
// @Tags Coach
// @Produce json
// @Success 200 {array} models.MatchMeta
// @Router /matches [get]
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.coach.ListMatches(r.Context()))
}

// Status reports liveness and the number of registered matches
// @Summary API Status
// @Tags Coach
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Router /status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.coach.Status(r.Context()))
}

// GetHistory returns archived matches, newest first
// @Summary Match History
// @Tags Coach
// @Produce json
// @Param limit query int false "Max entries (1-100)"
// @Success 200 {array} models.MatchHistoryEntry
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]string "Archive not configured"
// @Router /history [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := logic.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || h.validator.Var(n, "min=1,max=100") != nil {
			h.errorResponse(w, http.StatusBadRequest, "limit must be an integer between 1 and 100")
			return
		}
		limit = n
	}

	entries, err := h.coach.History(r.Context(), limit)
	if errors.Is(err, models.ErrArchiveDisabled) {
		h.errorResponse(w, http.StatusServiceUnavailable, "Match history is not configured")
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to load history", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load history")
		return
	}

	h.jsonResponse(w, http.StatusOK, entries)
}

// GetRules returns the active recommendation rule table
// @Summary Recommendation Rules
// @Tags Coach
// @Produce json
// @Success 200 {object} logic.RuleTable
// @Router /rules [get]
func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.coach.Rules())
}
