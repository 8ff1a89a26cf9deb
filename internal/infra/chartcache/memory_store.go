package chartcache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/natal-chart/internal/domain/chart"
)

type entry struct {
	view      chart.ChartView
	expiresAt time.Time
}

// MemoryStore is an in-process chart cache for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore constructs an empty cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry), now: time.Now}
}

// Get implements chart.Cache.
func (s *MemoryStore) Get(_ context.Context, key string) (chart.ChartView, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return chart.ChartView{}, false, nil
	}
	if !e.expiresAt.IsZero() && e.expiresAt.Before(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return chart.ChartView{}, false, nil
	}
	return e.view, true, nil
}

// Set stores the view; a non-positive ttl never expires.
func (s *MemoryStore) Set(_ context.Context, key string, view chart.ChartView, ttl time.Duration) error {
	var exp time.Time
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = entry{view: view, expiresAt: exp}
	s.mu.Unlock()
	return nil
}

var _ chart.Cache = (*MemoryStore)(nil)
