package chartrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/natal-chart/internal/domain/chart"
)

func TestMemoryRepositorySaveAndGet(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, found, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	record := chart.Record{
		ID:        "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		CreatedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		Ephemeris: "analytic",
		View:      chart.ChartView{JD: 2448026.708333},
	}
	require.NoError(t, repo.Save(ctx, record))

	got, found, err := repo.Get(ctx, record.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, record, got)
}
