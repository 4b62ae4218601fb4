package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

func writeMigrations(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"postgres/001_initial_schema.sql":   "CREATE TABLE IF NOT EXISTS coach_matches (match_id TEXT PRIMARY KEY);",
		"postgres/002_add_rating_index.sql":  "CREATE INDEX IF NOT EXISTS idx_coach_matches_rating ON coach_matches (rating);",
		"postgres/README.md":                 "not a migration",
		"clickhouse/001_initial_schema.sql": "CREATE DATABASE IF NOT EXISTS coach;\n\nCREATE TABLE IF NOT EXISTS coach.metric_scores (score Float64) ENGINE = MergeTree ORDER BY tuple();\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

type installBody struct {
	Results map[string]string `json:"results"`
	Error   bool              `json:"error"`
}

func install(t *testing.T, h *Handler) (int, installBody) {
	t.Helper()
	w := serve(h, http.MethodPost, "/api/system/install", "")
	var body installBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return w.Code, body
}

func TestInstallDatabase_SkipsUnconfigured(t *testing.T) {
	h := New(Config{Coach: &MockCoachService{}, MigrationsDir: writeMigrations(t), Logger: zap.NewNop()})

	code, body := install(t, h)
	if code != http.StatusOK || body.Error {
		t.Fatalf("expected success, got %d %+v", code, body)
	}
	if body.Results["postgres"] != "skipped: not configured" || body.Results["clickhouse"] != "skipped: not configured" {
		t.Errorf("unexpected results %+v", body.Results)
	}
}

func TestInstallDatabase_RunsMigrations(t *testing.T) {
	pg := &MockPostgresExecer{}
	ch := &MockClickHouseExecer{}
	h := New(Config{
		Coach:         &MockCoachService{},
		Postgres:      pg,
		ClickHouse:    ch,
		MigrationsDir: writeMigrations(t),
		Logger:        zap.NewNop(),
	})

	code, body := install(t, h)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d %+v", code, body)
	}
	if len(pg.Calls) != 2 {
		t.Fatalf("expected 2 postgres migrations, got %d", len(pg.Calls))
	}
	if !strings.HasPrefix(pg.Calls[0], "CREATE TABLE") || !strings.HasPrefix(pg.Calls[1], "CREATE INDEX") {
		t.Errorf("postgres migrations ran out of order: %q", pg.Calls)
	}
	if len(ch.Calls) != 2 {
		t.Errorf("expected 2 clickhouse statements, got %d", len(ch.Calls))
	}
	if body.Results["postgres"] != "success: 2 migration(s) applied" || body.Results["clickhouse"] != "success: 1 migration(s) applied" {
		t.Errorf("unexpected results %+v", body.Results)
	}
}

func TestInstallDatabase_Failure(t *testing.T) {
	pg := &MockPostgresExecer{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, errors.New("permission denied")
		},
	}
	h := New(Config{
		Coach:         &MockCoachService{},
		Postgres:      pg,
		ClickHouse:    &MockClickHouseExecer{},
		MigrationsDir: t.TempDir(),
		Logger:        zap.NewNop(),
	})

	code, body := install(t, h)
	if code != http.StatusInternalServerError || !body.Error {
		t.Fatalf("expected failure, got %d %+v", code, body)
	}
}

func TestInstallDatabase_StopsAtFailedMigration(t *testing.T) {
	pg := &MockPostgresExecer{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			if strings.HasPrefix(sql, "CREATE TABLE") {
				return pgconn.CommandTag{}, errors.New("syntax error")
			}
			return pgconn.CommandTag{}, nil
		},
	}
	h := New(Config{
		Coach:         &MockCoachService{},
		Postgres:      pg,
		MigrationsDir: writeMigrations(t),
		Logger:        zap.NewNop(),
	})

	code, body := install(t, h)
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if len(pg.Calls) != 1 {
		t.Errorf("expected to stop after the first migration, got %d calls", len(pg.Calls))
	}
	if !strings.Contains(body.Results["postgres"], "001_initial_schema.sql") {
		t.Errorf("expected failing file name in result, got %q", body.Results["postgres"])
	}
	if body.Results["clickhouse"] != "skipped: not configured" {
		t.Errorf("unexpected clickhouse result %q", body.Results["clickhouse"])
	}
}
