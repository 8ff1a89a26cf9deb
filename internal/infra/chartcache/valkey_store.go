package chartcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/natal-chart/internal/domain/chart"
)

// ValkeyStore caches rendered charts in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a cache backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "natal"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (chart.ChartView, bool, error) {
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return chart.ChartView{}, false, nil
		}
		return chart.ChartView{}, false, err
	}
	var view chart.ChartView
	if err := json.Unmarshal([]byte(payload), &view); err != nil {
		return chart.ChartView{}, false, err
	}
	return view, true, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key string, view chart.ChartView, ttl time.Duration) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(key string) string {
	return fmt.Sprintf("%s:chart:%s", s.prefix, key)
}

var _ chart.Cache = (*ValkeyStore)(nil)
