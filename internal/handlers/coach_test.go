package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/openmohaa/coach-api/internal/models"
)

func newTestHandler(coach *MockCoachService) *Handler {
	return New(Config{Coach: coach, Logger: zap.NewNop()})
}

func serve(h *Handler, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	NewRouter(h, []string{"*"}).ServeHTTP(w, req)
	return w
}

func TestSimulateMatch(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantMode string
		wantMap  string
	}{
		{"full body", `{"game_mode":"Duo","map_name":"Sanhok"}`, "Duo", "Sanhok"},
		{"partial body", `{"map_name":"Miramar"}`, "", "Miramar"},
		{"empty body", "", "", ""},
		{"malformed body", `{"game_mode":`, "", ""},
		{"wrong types", `{"game_mode":42}`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.SimulateMatchRequest
			h := newTestHandler(&MockCoachService{
				SimulateMatchFunc: func(ctx context.Context, req models.SimulateMatchRequest) (*models.SimulateMatchResponse, error) {
					got = req
					return &models.SimulateMatchResponse{Success: true, MatchID: "demo_1_abcd", OverallScore: 0.66}, nil
				},
			})

			w := serve(h, http.MethodPost, "/api/simulate-match", tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
			if got.GameMode != tt.wantMode || got.MapName != tt.wantMap {
				t.Errorf("expected request (%q, %q), got (%q, %q)", tt.wantMode, tt.wantMap, got.GameMode, got.MapName)
			}

			var resp models.SimulateMatchResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if !resp.Success || resp.MatchID != "demo_1_abcd" || resp.OverallScore != 0.66 {
				t.Errorf("unexpected response %+v", resp)
			}
		})
	}
}

func TestSimulateMatch_ServiceError(t *testing.T) {
	h := newTestHandler(&MockCoachService{
		SimulateMatchFunc: func(ctx context.Context, req models.SimulateMatchRequest) (*models.SimulateMatchResponse, error) {
			return nil, errors.New("disk full")
		},
	})

	w := serve(h, http.MethodPost, "/api/simulate-match", `{}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "disk full") {
		t.Errorf("expected error message in body, got %s", w.Body.String())
	}
}

func TestGetAnalysis(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"found", nil, http.StatusOK, `"match_id":"demo_7_abcd"`},
		{"not found", models.ErrMatchNotFound, http.StatusNotFound, "Match not found"},
		{"load failure", errors.New("schema mismatch"), http.StatusInternalServerError, "Failed to load analysis: schema mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID string
			h := newTestHandler(&MockCoachService{
				GetAnalysisFunc: func(ctx context.Context, matchID string) (*models.AnalysisResult, error) {
					gotID = matchID
					if tt.err != nil {
						return nil, tt.err
					}
					return &models.AnalysisResult{MatchID: matchID, Summary: "ok"}, nil
				},
			})

			w := serve(h, http.MethodGet, "/api/analysis/demo_7_abcd", "")
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if gotID != "demo_7_abcd" {
				t.Errorf("expected match id demo_7_abcd, got %q", gotID)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("expected body to contain %q, got %s", tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestClearMatches(t *testing.T) {
	called := false
	h := newTestHandler(&MockCoachService{
		ClearMatchesFunc: func(ctx context.Context) error {
			called = true
			return nil
		},
	})

	w := serve(h, http.MethodPost, "/api/clear-matches", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !called {
		t.Error("expected ClearMatches to be called")
	}
	if strings.TrimSpace(w.Body.String()) != `{"success":true}` {
		t.Errorf("unexpected body %s", w.Body.String())
	}

	h = newTestHandler(&MockCoachService{
		ClearMatchesFunc: func(ctx context.Context) error { return errors.New("permission denied") },
	})
	if w := serve(h, http.MethodPost, "/api/clear-matches", ""); w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestListMatchesAndStatus(t *testing.T) {
	h := newTestHandler(&MockCoachService{})

	w := serve(h, http.MethodGet, "/api/matches", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}

	w = serve(h, http.MethodGet, "/api/status", "")
	var status models.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Status != "online" || status.MatchCount != 0 {
		t.Errorf("unexpected status %+v", status)
	}
}

func TestGetHistory(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
		wantLimit  int
	}{
		{"default limit", "", nil, http.StatusOK, 20},
		{"explicit limit", "?limit=5", nil, http.StatusOK, 5},
		{"zero limit", "?limit=0", nil, http.StatusBadRequest, 0},
		{"too large", "?limit=101", nil, http.StatusBadRequest, 0},
		{"not a number", "?limit=ten", nil, http.StatusBadRequest, 0},
		{"archive disabled", "", models.ErrArchiveDisabled, http.StatusServiceUnavailable, 20},
		{"archive failure", "", errors.New("timeout"), http.StatusInternalServerError, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotLimit := 0
			h := newTestHandler(&MockCoachService{
				HistoryFunc: func(ctx context.Context, limit int) ([]models.MatchHistoryEntry, error) {
					gotLimit = limit
					return []models.MatchHistoryEntry{}, tt.err
				},
			})

			w := serve(h, http.MethodGet, "/api/history"+tt.query, "")
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if gotLimit != tt.wantLimit {
				t.Errorf("expected limit %d, got %d", tt.wantLimit, gotLimit)
			}
		})
	}
}

func TestGetRules(t *testing.T) {
	w := serve(newTestHandler(&MockCoachService{}), http.MethodGet, "/api/rules", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"high_below":0.4`) {
		t.Errorf("expected rule thresholds in body, got %s", w.Body.String())
	}
}
