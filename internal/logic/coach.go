package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/openmohaa/coach-api/internal/models"
)

var (
	matchesSimulated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coach_matches_simulated_total",
		Help: "Total number of simulated match analyses",
	})

	recommendationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coach_recommendations_emitted_total",
		Help: "Recommendations emitted, by priority",
	}, []string{"priority"})

	overallScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "coach_overall_score",
		Help:    "Distribution of overall match scores",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})

	scoreRowsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coach_score_rows_dropped_total",
		Help: "Score rows that could not be queued for analytics",
	})
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// CoachConfig wires the coach service. Cache, Archive and Scores are optional.
type CoachConfig struct {
	Analyzer        *Analyzer
	Store           MatchStore
	Cache           AnalysisCache
	Archive         MatchArchive
	Scores          ScoreSink
	DefaultGameMode string
	DefaultMapName  string
	Logger          *zap.Logger
}

type coachService struct {
	analyzer        *Analyzer
	store           MatchStore
	cache           AnalysisCache
	archive         MatchArchive
	scores          ScoreSink
	defaultGameMode string
	defaultMapName  string
	validate        *validator.Validate
	logger          *zap.SugaredLogger
	now             func() time.Time
}

func NewCoachService(cfg CoachConfig) CoachService {
	if cfg.DefaultGameMode == "" {
		cfg.DefaultGameMode = "Solo"
	}
	if cfg.DefaultMapName == "" {
		cfg.DefaultMapName = "Erangel"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &coachService{
		analyzer:        cfg.Analyzer,
		store:           cfg.Store,
		cache:           cfg.Cache,
		archive:         cfg.Archive,
		scores:          cfg.Scores,
		defaultGameMode: cfg.DefaultGameMode,
		defaultMapName:  cfg.DefaultMapName,
		validate:        validator.New(),
		logger:          cfg.Logger.Sugar(),
		now:             time.Now,
	}
}

// NewMatchID returns an id of the form demo_<unix>_<8 hex chars>.
func NewMatchID(now time.Time) string {
	return fmt.Sprintf("demo_%d_%s", now.Unix(), uuid.New().String()[:8])
}

// resolveRequest applies defaults. Invalid fields are replaced, never rejected.
func (s *coachService) resolveRequest(req models.SimulateMatchRequest) (gameMode, mapName string) {
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				s.logger.Warnw("Invalid simulate-match field, using default", "field", fe.Field(), "tag", fe.Tag())
				switch fe.StructField() {
				case "GameMode":
					req.GameMode = ""
				case "MapName":
					req.MapName = ""
				}
			}
		}
	}

	gameMode = strings.TrimSpace(req.GameMode)
	if gameMode == "" {
		gameMode = s.defaultGameMode
	}
	mapName = strings.TrimSpace(req.MapName)
	if mapName == "" {
		mapName = s.defaultMapName
	}
	return gameMode, mapName
}

func (s *coachService) SimulateMatch(ctx context.Context, req models.SimulateMatchRequest) (*models.SimulateMatchResponse, error) {
	gameMode, mapName := s.resolveRequest(req)
	now := s.now()
	matchID := NewMatchID(now)

	result, err := s.analyzer.Analyze(matchID, gameMode, mapName)
	if err != nil {
		return nil, fmt.Errorf("analyze match: %w", err)
	}
	overall, err := result.Metrics.Overall()
	if err != nil {
		return nil, fmt.Errorf("overall score: %w", err)
	}

	meta, err := s.store.Save(ctx, models.MatchMeta{
		ID:        matchID,
		GameMode:  gameMode,
		MapName:   mapName,
		CreatedAt: now.UTC(),
	}, result)
	if err != nil {
		return nil, fmt.Errorf("save match: %w", err)
	}

	matchesSimulated.Inc()
	overallScores.Observe(overall)
	for _, rec := range result.Recommendations {
		recommendationsEmitted.WithLabelValues(string(rec.Priority)).Inc()
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, result); err != nil {
			s.logger.Warnw("Failed to cache analysis", "error", err, "match_id", matchID)
		}
	}

	if s.archive != nil {
		err := s.archive.Record(ctx, models.MatchHistoryEntry{
			MatchID:      matchID,
			GameMode:     gameMode,
			MapName:      mapName,
			OverallScore: overall,
			Rating:       Rating(overall),
			CreatedAt:    meta.CreatedAt,
		})
		if err != nil {
			s.logger.Warnw("Failed to archive match", "error", err, "match_id", matchID)
		}
	}

	if s.scores != nil {
		for _, row := range models.ScoreRows(meta, result) {
			if !s.scores.Enqueue(row) {
				scoreRowsDropped.Inc()
			}
		}
	}

	s.logger.Infow("Match simulated",
		"match_id", matchID,
		"game_mode", gameMode,
		"map_name", mapName,
		"overall_score", overall,
		"recommendations", len(result.Recommendations),
	)

	return &models.SimulateMatchResponse{
		Success:      true,
		MatchID:      matchID,
		OverallScore: overall,
	}, nil
}

// GetAnalysis consults the registry first so cleared matches are never
// served from a stale cache entry.
func (s *coachService) GetAnalysis(ctx context.Context, matchID string) (*models.AnalysisResult, error) {
	if _, ok := s.store.Get(matchID); !ok {
		return nil, models.ErrMatchNotFound
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, matchID)
		if err != nil {
			s.logger.Warnw("Cache lookup failed", "error", err, "match_id", matchID)
		} else if ok {
			return cached, nil
		}
	}

	result, err := s.store.Load(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, result); err != nil {
			s.logger.Warnw("Failed to cache analysis", "error", err, "match_id", matchID)
		}
	}
	return result, nil
}

func (s *coachService) ClearMatches(ctx context.Context) error {
	// ids is the unregistered set even when some directories failed to delete.
	ids, clearErr := s.store.Clear(ctx)

	if s.cache != nil && len(ids) > 0 {
		if err := s.cache.Delete(ctx, ids...); err != nil {
			s.logger.Warnw("Failed to evict cleared matches from cache", "error", err, "count", len(ids))
		}
	}

	if clearErr != nil {
		return fmt.Errorf("clear matches: %w", clearErr)
	}
	s.logger.Infow("Matches cleared", "count", len(ids))
	return nil
}

func (s *coachService) ListMatches(ctx context.Context) []models.MatchMeta {
	return s.store.List()
}

func (s *coachService) Status(ctx context.Context) models.StatusResponse {
	return models.StatusResponse{
		Status:     "online",
		Message:    "Gameplay coach API is running",
		MatchCount: s.store.Count(),
	}
}

func (s *coachService) History(ctx context.Context, limit int) ([]models.MatchHistoryEntry, error) {
	if s.archive == nil {
		return nil, models.ErrArchiveDisabled
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.archive.Recent(ctx, limit)
}

func (s *coachService) Rules() *RuleTable {
	return s.analyzer.Engine().Table()
}
