package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/openmohaa/coach-api/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// ScoreQueue exposes the depth of the analytics worker pool
type ScoreQueue interface {
	QueueDepth() int
}

// Pinger is a dependency that can report its health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// PostgresExecer runs schema statements against PostgreSQL
type PostgresExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ClickHouseExecer runs schema statements against ClickHouse
type ClickHouseExecer interface {
	Exec(ctx context.Context, query string, args ...any) error
}

type Config struct {
	Coach         logic.CoachService
	Scores        ScoreQueue
	Postgres      PostgresExecer
	ClickHouse    ClickHouseExecer
	Checks        map[string]Pinger
	MigrationsDir string
	Logger        *zap.Logger
}

type Handler struct {
	coach         logic.CoachService
	scores        ScoreQueue
	pg            PostgresExecer
	ch            ClickHouseExecer
	checks        map[string]Pinger
	migrationsDir string
	logger        *zap.SugaredLogger
	validator     *validator.Validate
}

func New(cfg Config) *Handler {
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Handler{
		coach:         cfg.Coach,
		scores:        cfg.Scores,
		pg:            cfg.Postgres,
		ch:            cfg.ClickHouse,
		checks:        cfg.Checks,
		migrationsDir: cfg.MigrationsDir,
		logger:        cfg.Logger.Sugar(),
		validator:     validator.New(),
	}
}
