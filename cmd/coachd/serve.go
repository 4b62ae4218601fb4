package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/openmohaa/coach-api/docs"
	"github.com/openmohaa/coach-api/internal/cache"
	"github.com/openmohaa/coach-api/internal/config"
	"github.com/openmohaa/coach-api/internal/handlers"
	"github.com/openmohaa/coach-api/internal/logic"
	"github.com/openmohaa/coach-api/internal/store"
	"github.com/openmohaa/coach-api/internal/worker"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

// app is everything serve needs, built from config.
type app struct {
	router  http.Handler
	pool    *worker.Pool
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	if a.pool != nil {
		a.pool.Start(gctx)
	}

	g.Go(func() error {
		logger.Info("HTTP server listening", zap.Int("port", cfg.Port), zap.String("dataDir", cfg.DataDir))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		if a.pool != nil {
			a.pool.Stop()
		}
		return err
	})

	return g.Wait()
}

func buildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{}
	log := logger.Sugar()

	rules, err := logic.LoadRuleFile(cfg.RulesFile, logic.DefaultMetricSpecs)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	analyzer := logic.NewAnalyzer(
		logic.NewSimulator(logic.NewUnseededRandomSource(), logic.DefaultMetricSpecs),
		logic.NewEngine(rules),
	)

	fileStore, err := store.NewFileStore(cfg.DataDir, logger)
	if err != nil {
		return nil, err
	}

	checks := make(map[string]handlers.Pinger)

	var analysisCache logic.AnalysisCache = cache.NewMemoryCache()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		a.closers = append(a.closers, func() { rdb.Close() })
		analysisCache = cache.NewRedisCache(rdb, cfg.CacheTTL)
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		log.Infow("Redis analysis cache enabled", "ttl", cfg.CacheTTL)
	}

	var (
		archive logic.MatchArchive
		pgExec  handlers.PostgresExecer
	)
	if cfg.PostgresURL != "" {
		pg, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, pg.Close)
		archive = store.NewPgArchive(pg)
		pgExec = pg
		checks["postgres"] = pg
		log.Info("PostgreSQL match archive enabled")
	}

	var (
		scores logic.ScoreSink
		queue  handlers.ScoreQueue
		chExec handlers.ClickHouseExecer
	)
	if cfg.ClickHouseURL != "" {
		opts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("parse CLICKHOUSE_URL: %w", err)
		}
		conn, err := clickhouse.Open(opts)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("connect clickhouse: %w", err)
		}
		a.closers = append(a.closers, func() { conn.Close() })
		a.pool = worker.NewPool(worker.PoolConfig{
			WorkerCount:   cfg.WorkerCount,
			QueueSize:     cfg.QueueSize,
			BatchSize:     cfg.BatchSize,
			FlushInterval: cfg.FlushInterval,
			ClickHouse:    conn,
			Logger:        logger,
		})
		scores, queue, chExec = a.pool, a.pool, conn
		checks["clickhouse"] = conn
		log.Info("ClickHouse score pipeline enabled")
	}

	coach := logic.NewCoachService(logic.CoachConfig{
		Analyzer:        analyzer,
		Store:           fileStore,
		Cache:           analysisCache,
		Archive:         archive,
		Scores:          scores,
		DefaultGameMode: cfg.DefaultGameMode,
		DefaultMapName:  cfg.DefaultMapName,
		Logger:          logger,
	})

	h := handlers.New(handlers.Config{
		Coach:      coach,
		Scores:     queue,
		Postgres:   pgExec,
		ClickHouse: chExec,
		Checks:     checks,
		Logger:     logger,
	})
	a.router = handlers.NewRouter(h, cfg.AllowedOrigins)

	return a, nil
}
