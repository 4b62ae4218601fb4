package handlers

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/openmohaa/coach-api/internal/logic"
	"github.com/openmohaa/coach-api/internal/models"
)

// MockCoachService
type MockCoachService struct {
	SimulateMatchFunc func(ctx context.Context, req models.SimulateMatchRequest) (*models.SimulateMatchResponse, error)
	GetAnalysisFunc   func(ctx context.Context, matchID string) (*models.AnalysisResult, error)
	ClearMatchesFunc  func(ctx context.Context) error
	ListMatchesFunc   func(ctx context.Context) []models.MatchMeta
	HistoryFunc       func(ctx context.Context, limit int) ([]models.MatchHistoryEntry, error)
}

func (m *MockCoachService) SimulateMatch(ctx context.Context, req models.SimulateMatchRequest) (*models.SimulateMatchResponse, error) {
	if m.SimulateMatchFunc != nil {
		return m.SimulateMatchFunc(ctx, req)
	}
	return &models.SimulateMatchResponse{Success: true, MatchID: "demo_1_mock", OverallScore: 0.5}, nil
}

func (m *MockCoachService) GetAnalysis(ctx context.Context, matchID string) (*models.AnalysisResult, error) {
	if m.GetAnalysisFunc != nil {
		return m.GetAnalysisFunc(ctx, matchID)
	}
	return &models.AnalysisResult{MatchID: matchID}, nil
}

func (m *MockCoachService) ClearMatches(ctx context.Context) error {
	if m.ClearMatchesFunc != nil {
		return m.ClearMatchesFunc(ctx)
	}
	return nil
}

func (m *MockCoachService) ListMatches(ctx context.Context) []models.MatchMeta {
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(ctx)
	}
	return []models.MatchMeta{}
}

func (m *MockCoachService) Status(ctx context.Context) models.StatusResponse {
	return models.StatusResponse{Status: "online", Message: "mock", MatchCount: len(m.ListMatches(ctx))}
}

func (m *MockCoachService) History(ctx context.Context, limit int) ([]models.MatchHistoryEntry, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, limit)
	}
	return []models.MatchHistoryEntry{}, nil
}

func (m *MockCoachService) Rules() *logic.RuleTable {
	return logic.DefaultRuleTable()
}

type MockScoreQueue struct {
	Depth int
}

func (m *MockScoreQueue) QueueDepth() int { return m.Depth }

type MockPostgresExecer struct {
	ExecFunc func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Calls    []string
}

func (m *MockPostgresExecer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.Calls = append(m.Calls, sql)
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

type MockClickHouseExecer struct {
	ExecFunc func(ctx context.Context, query string, args ...any) error
	Calls    []string
}

func (m *MockClickHouseExecer) Exec(ctx context.Context, query string, args ...any) error {
	m.Calls = append(m.Calls, query)
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, query, args...)
	}
	return nil
}
