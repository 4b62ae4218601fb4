// Package worker implements the buffered worker pool that ships per-metric
// scores to ClickHouse. It decouples request handling from analytics writes:
// - Backpressure handling via load shedding
// - Batch inserts for efficient ClickHouse writes
// - Graceful shutdown with flush guarantees
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/openmohaa/coach-api/internal/models"
)

// Prometheus metrics
var (
	rowsQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coach_score_rows_queued_total",
		Help: "Total number of score rows queued for analytics",
	})

	rowsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coach_score_rows_written_total",
		Help: "Total number of score rows written to ClickHouse",
	})

	rowsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coach_score_rows_failed_total",
		Help: "Total number of score rows that failed to write",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coach_score_queue_depth",
		Help: "Current depth of the score row queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "coach_score_batch_insert_duration_seconds",
		Help:    "Duration of batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})

	rowsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coach_score_rows_load_shed_total",
		Help: "Total number of score rows dropped due to load shedding",
	})
)

const insertScoresSQL = `
	INSERT INTO coach.metric_scores (
		recorded_at, match_id, game_mode, map_name, category, metric, score
	)
`

// flushTimeout bounds a single batch write, including the final flush on shutdown
const flushTimeout = 10 * time.Second

// BatchConn is the part of driver.Conn the pool needs.
type BatchConn interface {
	PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error)
}

// Job represents a unit of work for the worker pool
type Job struct {
	Row      models.ScoreRow
	Enqueued time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    BatchConn
	Logger        *zap.Logger
}

// Pool manages a pool of workers for async score writes
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger

	mu     sync.RWMutex
	closed bool
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop closes the queue and waits for workers to flush what is left.
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobQueue)
	p.mu.Unlock()

	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.logger.Info("Worker pool stopped")
}

// Enqueue adds a row to the queue. It never blocks: when the queue is full
// or the pool is stopped the row is dropped and false is returned.
func (p *Pool) Enqueue(row models.ScoreRow) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		rowsLoadShed.Inc()
		return false
	}

	select {
	case p.jobQueue <- Job{Row: row, Enqueued: time.Now()}:
		rowsQueued.Inc()
		return true
	default:
		p.logger.Warnw("Score queue full, dropping row", "match_id", row.MatchID, "metric", row.Metric)
		rowsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}

// worker processes jobs from the queue in batches
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if written, err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch processing failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			rowsFailed.Add(float64(len(batch)))
		} else {
			p.logger.Debugw("Batch processed", "worker", id, "batchSize", len(batch), "written", written, "duration", time.Since(start))
			rowsWritten.Add(float64(written))
			rowsFailed.Add(float64(len(batch) - written))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

// processBatch writes a batch of score rows in one ClickHouse insert and
// returns how many rows were appended. Rows the driver rejects are skipped.
func (p *Pool) processBatch(batch []Job) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, insertScoresSQL)
	if err != nil {
		return 0, err
	}

	appended := 0
	for _, job := range batch {
		row := job.Row
		err := chBatch.Append(
			row.RecordedAt,
			row.MatchID,
			row.GameMode,
			row.MapName,
			string(row.Category),
			row.Metric,
			row.Score,
		)
		if err != nil {
			p.logger.Warnw("Failed to append row to batch", "error", err, "match_id", row.MatchID, "metric", row.Metric)
			continue
		}
		appended++
	}

	if err := chBatch.Send(); err != nil {
		p.logger.Errorw("Failed to send batch to ClickHouse", "error", err, "batchSize", len(batch))
		return 0, err
	}
	return appended, nil
}
