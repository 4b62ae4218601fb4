package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/openmohaa/coach-api/internal/models"
)

// PgPool defines the subset of pgxpool.Pool the archive needs
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PgArchive keeps match history in PostgreSQL. Clearing matches does not touch it.
type PgArchive struct {
	pg PgPool
}

func NewPgArchive(pg PgPool) *PgArchive {
	return &PgArchive{pg: pg}
}

func (a *PgArchive) Record(ctx context.Context, entry models.MatchHistoryEntry) error {
	_, err := a.pg.Exec(ctx, `
		INSERT INTO coach_matches (match_id, game_mode, map_name, overall_score, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (match_id) DO NOTHING
	`, entry.MatchID, entry.GameMode, entry.MapName, entry.OverallScore, entry.Rating, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("archive match %s: %w", entry.MatchID, err)
	}
	return nil
}

// Recent returns the newest archived matches first.
func (a *PgArchive) Recent(ctx context.Context, limit int) ([]models.MatchHistoryEntry, error) {
	rows, err := a.pg.Query(ctx, `
		SELECT match_id, game_mode, map_name, overall_score, rating, created_at
		FROM coach_matches
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := make([]models.MatchHistoryEntry, 0, limit)
	for rows.Next() {
		var e models.MatchHistoryEntry
		if err := rows.Scan(&e.MatchID, &e.GameMode, &e.MapName, &e.OverallScore, &e.Rating, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
