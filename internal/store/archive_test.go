package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmohaa/coach-api/internal/models"
)

// MockPgPool implements PgPool
type MockPgPool struct {
	QueryFunc func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	ExecFunc  func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &MockRows{}, nil
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql, args...)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

// MockRows serves history entries through the pgx.Rows interface
type MockRows struct {
	pgx.Rows
	entries []models.MatchHistoryEntry
	pos     int
	closed  bool
}

func (r *MockRows) Next() bool {
	if r.pos >= len(r.entries) {
		return false
	}
	r.pos++
	return true
}

func (r *MockRows) Scan(dest ...any) error {
	e := r.entries[r.pos-1]
	*dest[0].(*string) = e.MatchID
	*dest[1].(*string) = e.GameMode
	*dest[2].(*string) = e.MapName
	*dest[3].(*float64) = e.OverallScore
	*dest[4].(*string) = e.Rating
	*dest[5].(*time.Time) = e.CreatedAt
	return nil
}

func (r *MockRows) Close()     { r.closed = true }
func (r *MockRows) Err() error { return nil }

func TestArchiveRecord(t *testing.T) {
	var gotSQL string
	var gotArgs []any
	archive := NewPgArchive(&MockPgPool{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			gotSQL, gotArgs = sql, args
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	})

	entry := models.MatchHistoryEntry{
		MatchID:      "demo_1_abcd",
		GameMode:     "Solo",
		MapName:      "Erangel",
		OverallScore: 0.61,
		Rating:       "Advanced",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, archive.Record(context.Background(), entry))

	assert.True(t, strings.Contains(gotSQL, "ON CONFLICT (match_id) DO NOTHING"))
	assert.Equal(t, []any{entry.MatchID, entry.GameMode, entry.MapName, entry.OverallScore, entry.Rating, entry.CreatedAt}, gotArgs)
}

func TestArchiveRecord_Error(t *testing.T) {
	archive := NewPgArchive(&MockPgPool{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, errors.New("connection refused")
		},
	})

	err := archive.Record(context.Background(), models.MatchHistoryEntry{MatchID: "demo_1_x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "demo_1_x")
}

func TestArchiveRecent(t *testing.T) {
	now := time.Now().UTC()
	rows := &MockRows{entries: []models.MatchHistoryEntry{
		{MatchID: "demo_2_b", GameMode: "Duo", MapName: "Sanhok", OverallScore: 0.8, Rating: "Expert", CreatedAt: now},
		{MatchID: "demo_1_a", GameMode: "Solo", MapName: "Erangel", OverallScore: 0.3, Rating: "Beginner", CreatedAt: now.Add(-time.Hour)},
	}}

	var gotLimit any
	archive := NewPgArchive(&MockPgPool{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			gotLimit = args[0]
			return rows, nil
		},
	})

	entries, err := archive.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, rows.entries, entries)
	assert.Equal(t, 5, gotLimit)
	assert.True(t, rows.closed)
}

func TestArchiveRecent_QueryError(t *testing.T) {
	archive := NewPgArchive(&MockPgPool{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return nil, errors.New("relation does not exist")
		},
	})

	_, err := archive.Recent(context.Background(), 5)
	assert.Error(t, err)
}
