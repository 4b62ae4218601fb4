package logic

import (
	"context"

	"github.com/openmohaa/coach-api/internal/models"
)

// ScoreSource produces a score in [0,1] for a single metric. The random
// simulator is the only implementation today; a real estimator would plug in here.
type ScoreSource interface {
	Score(spec MetricSpec) float64
}

// MatchStore persists analyses and keeps the match registry.
type MatchStore interface {
	Save(ctx context.Context, meta models.MatchMeta, result *models.AnalysisResult) (models.MatchMeta, error)
	Load(ctx context.Context, matchID string) (*models.AnalysisResult, error)
	Get(matchID string) (models.MatchMeta, bool)
	List() []models.MatchMeta
	Count() int
	Clear(ctx context.Context) ([]string, error)
}

// AnalysisCache is a read-through cache in front of the MatchStore
type AnalysisCache interface {
	Get(ctx context.Context, matchID string) (*models.AnalysisResult, bool, error)
	Set(ctx context.Context, result *models.AnalysisResult) error
	Delete(ctx context.Context, matchIDs ...string) error
}

// MatchArchive records match outcomes in long-lived history storage.
type MatchArchive interface {
	Record(ctx context.Context, entry models.MatchHistoryEntry) error
	Recent(ctx context.Context, limit int) ([]models.MatchHistoryEntry, error)
}

// ScoreSink receives per-metric rows for asynchronous analytics writes.
type ScoreSink interface {
	Enqueue(row models.ScoreRow) bool
	QueueDepth() int
}

// CoachService is the request-level API used by the HTTP handlers.
type CoachService interface {
	SimulateMatch(ctx context.Context, req models.SimulateMatchRequest) (*models.SimulateMatchResponse, error)
	GetAnalysis(ctx context.Context, matchID string) (*models.AnalysisResult, error)
	ClearMatches(ctx context.Context) error
	ListMatches(ctx context.Context) []models.MatchMeta
	Status(ctx context.Context) models.StatusResponse
	History(ctx context.Context, limit int) ([]models.MatchHistoryEntry, error)
	Rules() *RuleTable
}
