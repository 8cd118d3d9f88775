package syncer

import (
	"context"
	"sync"

	"github.com/vitthal2611/goal-tracker/internal/sheet"
)

// MemoryTransport is an in-process row store implementing Transport. It
// applies pushes through Reconcile, exactly as the remote endpoint would,
// which makes it the offline backend and the scheduler's test double.
type MemoryTransport struct {
	mu   sync.Mutex
	rows []sheet.Row

	// Optional fault injection for tests.
	PullErr error
	PushErr error
}

// NewMemoryTransport returns an empty in-memory row store.
func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{}
}

// Pull returns a copy of the stored rows.
func (m *MemoryTransport) Pull(ctx context.Context) ([]sheet.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PullErr != nil {
		return nil, m.PullErr
	}
	out := make([]sheet.Row, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

// Push reconciles the payload against the stored rows under the given mode.
func (m *MemoryTransport) Push(ctx context.Context, mode Mode, rows []sheet.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PushErr != nil {
		return m.PushErr
	}
	next, _, err := Reconcile(m.rows, rows, mode)
	if err != nil {
		return err
	}
	m.rows = next
	return nil
}

// Rows returns a copy of the current row set.
func (m *MemoryTransport) Rows() []sheet.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sheet.Row, len(m.rows))
	copy(out, m.rows)
	return out
}

// Seed replaces the stored rows, bypassing reconciliation.
func (m *MemoryTransport) Seed(rows []sheet.Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = make([]sheet.Row, len(rows))
	copy(m.rows, rows)
}
