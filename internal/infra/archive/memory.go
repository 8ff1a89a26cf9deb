package archive

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"sync"

	"github.com/yanqian/natal-chart/internal/domain/chart"
)

// MemoryStorage keeps snapshots in memory. Useful for tests and local dev.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStorage constructs storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string][]byte)}
}

// Put stores the snapshot and returns metadata.
func (s *MemoryStorage) Put(_ context.Context, key string, data []byte, _ string) (chart.StoredObject, error) {
	hash := md5.Sum(data)
	stored := append([]byte(nil), data...)
	s.mu.Lock()
	s.blobs[key] = stored
	s.mu.Unlock()
	return chart.StoredObject{Key: key, Size: int64(len(data)), ETag: hex.EncodeToString(hash[:])}, nil
}

// Get returns a stored snapshot.
func (s *MemoryStorage) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	return data, ok
}

var _ chart.Archive = (*MemoryStorage)(nil)
