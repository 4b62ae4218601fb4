package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MockClickHouseConn records every row appended across all batches
type MockClickHouseConn struct {
	mu         sync.Mutex
	rows       [][]any
	batches    int
	PrepareErr error
	SendErr    error
	// RejectMetric makes Append fail for rows with this metric name
	RejectMetric string
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	if m.PrepareErr != nil {
		return nil, m.PrepareErr
	}
	return &MockBatch{conn: m}, nil
}

func (m *MockClickHouseConn) RowCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *MockClickHouseConn) BatchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batches
}

type MockBatch struct {
	driver.Batch
	conn    *MockClickHouseConn
	pending [][]any
}

func (b *MockBatch) Append(v ...any) error {
	if len(v) != 7 {
		return errors.New("unexpected column count")
	}
	if b.conn.RejectMetric != "" && v[5] == b.conn.RejectMetric {
		return errors.New("column score: invalid value")
	}
	b.pending = append(b.pending, v)
	return nil
}

func (b *MockBatch) Send() error {
	if b.conn.SendErr != nil {
		return b.conn.SendErr
	}
	b.conn.mu.Lock()
	b.conn.rows = append(b.conn.rows, b.pending...)
	b.conn.batches++
	b.conn.mu.Unlock()
	return nil
}
