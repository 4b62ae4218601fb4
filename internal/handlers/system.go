package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// InstallDatabase applies the schema migrations to the configured databases
// @Summary Install Database Schema
// @Description Applies every SQL migration for ClickHouse and PostgreSQL in file-name order. Backends that are not configured are skipped.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /system/install [post]
func (h *Handler) InstallDatabase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	results := make(map[string]string)
	hasError := false

	record := func(db string, configured bool, apply func() (int, error)) {
		if !configured {
			results[db] = "skipped: not configured"
			return
		}
		n, err := apply()
		if err != nil {
			results[db] = "failed: " + err.Error()
			hasError = true
			return
		}
		results[db] = fmt.Sprintf("success: %d migration(s) applied", n)
	}

	record("postgres", h.pg != nil, func() (int, error) {
		return h.applyMigrations(ctx, "postgres", func(sql string) error {
			_, err := h.pg.Exec(ctx, sql)
			return err
		})
	})
	record("clickhouse", h.ch != nil, func() (int, error) {
		return h.applyMigrations(ctx, "clickhouse", func(sql string) error {
			return h.execClickHouseStatements(ctx, sql)
		})
	})

	statusCode := http.StatusOK
	if hasError {
		statusCode = http.StatusInternalServerError
	}

	h.jsonResponse(w, statusCode, map[string]interface{}{
		"status":  "completed",
		"results": results,
		"error":   hasError,
	})
}

// migrationFiles lists the .sql files of one backend in lexical order, so
// 001_ runs before 002_.
func (h *Handler) migrationFiles(db string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(h.migrationsDir, db, "*.sql"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migrations found in %s", filepath.Join(h.migrationsDir, db))
	}
	sort.Strings(files)
	return files, nil
}

// applyMigrations runs every migration file of db and stops at the first failure.
func (h *Handler) applyMigrations(ctx context.Context, db string, exec func(sql string) error) (int, error) {
	files, err := h.migrationFiles(db)
	if err != nil {
		h.logger.Errorw("Failed to list migrations", "db", db, "error", err)
		return 0, err
	}

	for i, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			h.logger.Errorw("Failed to read migration", "db", db, "path", path, "error", err)
			return i, err
		}
		if err := exec(string(content)); err != nil {
			h.logger.Errorw("Migration failed", "db", db, "file", filepath.Base(path), "error", err)
			return i, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		h.logger.Infow("Migration applied", "db", db, "file", filepath.Base(path))
	}
	return len(files), nil
}

// execClickHouseStatements runs a migration statement by statement; the
// ClickHouse driver rejects multi-statement queries.
func (h *Handler) execClickHouseStatements(ctx context.Context, content string) error {
	for _, stmt := range strings.Split(content, ";") {
		trimmed := strings.TrimSpace(stmt)
		if trimmed == "" {
			continue
		}
		if err := h.ch.Exec(ctx, trimmed); err != nil {
			h.logger.Warnw("Statement execution failed", "db", "clickhouse", "error", err, "statement", trimmed[:min(len(trimmed), 50)]+"...")
			return err
		}
	}
	return nil
}
