package chartrepo

import (
	"context"
	"sync"

	"github.com/yanqian/natal-chart/internal/domain/chart"
)

// MemoryRepository is an in-memory chart.Repository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]chart.Record
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]chart.Record)}
}

// Save implements chart.Repository. Saving an existing id replaces it.
func (r *MemoryRepository) Save(_ context.Context, record chart.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = record
	return nil
}

// Get implements chart.Repository.
func (r *MemoryRepository) Get(_ context.Context, id string) (chart.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	return record, ok, nil
}

var _ chart.Repository = (*MemoryRepository)(nil)
