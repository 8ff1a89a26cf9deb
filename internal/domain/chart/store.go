package chart

import (
	"context"
	"time"

	"github.com/yanqian/natal-chart/internal/domain/astro"
)

// Cache keeps rendered charts keyed by their normalized input. Charts are
// deterministic, so a hit is always valid for the same backends and locale.
type Cache interface {
	Get(ctx context.Context, key string) (ChartView, bool, error)
	Set(ctx context.Context, key string, view ChartView, ttl time.Duration) error
}

// Record is a persisted chart.
type Record struct {
	ID            string           `json:"id"`
	CreatedAt     time.Time        `json:"createdAt"`
	Owner         string           `json:"owner,omitempty"`
	Input         astro.BirthInput `json:"input"`
	Ephemeris     string           `json:"ephemeris"`
	AyanamsaModel string           `json:"ayanamsaModel"`
	View          ChartView        `json:"chart"`
}

// Repository persists computed charts.
type Repository interface {
	Save(ctx context.Context, record Record) error
	Get(ctx context.Context, id string) (Record, bool, error)
}

// StoredObject describes an archived snapshot.
type StoredObject struct {
	Key  string
	Size int64
	ETag string
}

// Archive keeps an immutable JSON snapshot of every chart.
type Archive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (StoredObject, error)
}
