package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driven"
)

// Ensure ImportLedger implements the interface.
var _ driven.ImportLedger = (*ImportLedger)(nil)

// ImportLedger is an in-memory implementation of driven.ImportLedger.
type ImportLedger struct {
	mu   sync.RWMutex
	runs map[string]domain.ImportRun
}

// NewImportLedger creates an empty in-memory ledger.
func NewImportLedger() *ImportLedger {
	return &ImportLedger{runs: make(map[string]domain.ImportRun)}
}

// Record stores or replaces a run.
func (l *ImportLedger) Record(_ context.Context, run domain.ImportRun) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.runs[run.ID] = run
	return nil
}

// Get retrieves a run by ID.
func (l *ImportLedger) Get(_ context.Context, id string) (*domain.ImportRun, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	run, ok := l.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// List returns up to limit runs, newest first. A non-positive limit returns all.
func (l *ImportLedger) List(_ context.Context, limit int) ([]domain.ImportRun, error) {
	l.mu.RLock()
	out := make([]domain.ImportRun, 0, len(l.runs))
	for _, run := range l.runs {
		out = append(out, run)
	}
	l.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
