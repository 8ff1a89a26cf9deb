package chart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/natal-chart/internal/domain/astro"
	"github.com/yanqian/natal-chart/internal/infra/ephemeris/analytic"
	apperrors "github.com/yanqian/natal-chart/pkg/errors"
)

func TestServiceComputeAndGet(t *testing.T) {
	cache, repo, archive := newFakeCache(), newFakeRepo(), &fakeArchive{}
	svc := newTestService(t, Config{}, analytic.NewProvider(), cache, repo, archive)

	resp, err := svc.Compute(context.Background(), delhiRequest())
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	require.False(t, resp.Cached)
	require.Equal(t, "analytic", resp.Ephemeris)
	require.Equal(t, "lahiri", resp.AyanamsaModel)
	require.Equal(t, "1990-05-15T05:00:00.000Z", resp.Date)
	require.InDelta(t, 23.722, resp.Ayanamsa, 1e-3)
	require.Len(t, resp.Planets, 10)
	require.Equal(t, "Taurus", *resp.Planets["sun"].Sign)
	require.Equal(t, "Sagittarius", *resp.Planets["moon"].Sign)

	stored, err := svc.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Equal(t, resp.ChartView, stored.ChartView)
	require.Equal(t, resp.ID, stored.ID)

	require.Len(t, archive.keys(), 1)
	require.True(t, strings.HasPrefix(archive.keys()[0], "charts/"))
	require.True(t, strings.HasSuffix(archive.keys()[0], resp.ID+".json"))

	var snapshot Record
	require.NoError(t, json.Unmarshal(archive.objects[archive.keys()[0]], &snapshot))
	require.Equal(t, resp.ID, snapshot.ID)
	require.Equal(t, 1990, snapshot.Input.Year)
}

func TestServiceCachesCompleteCharts(t *testing.T) {
	cache := newFakeCache()
	svc := newTestService(t, Config{}, analytic.NewProvider(), cache, newFakeRepo(), nil)

	first, err := svc.Compute(context.Background(), delhiRequest())
	require.NoError(t, err)
	require.False(t, first.Cached)
	require.Equal(t, 1, cache.size())

	second, err := svc.Compute(context.Background(), delhiRequest())
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, first.ChartView, second.ChartView)
}

func TestServiceSkipsCacheForDegradedCharts(t *testing.T) {
	cache := newFakeCache()
	eph := &stubEphemeris{fail: map[astro.Body]error{astro.Jupiter: errors.New("no data")}}
	svc := newTestService(t, Config{}, eph, cache, newFakeRepo(), nil)

	resp, err := svc.Compute(context.Background(), delhiRequest())
	require.NoError(t, err)
	require.Zero(t, cache.size())

	jupiter := resp.Planets["jupiter"]
	require.False(t, jupiter.OK())
	require.Nil(t, jupiter.Deg)
	require.Nil(t, jupiter.Sign)
	require.Contains(t, jupiter.Error, "no data")
	require.True(t, resp.Planets["saturn"].OK())
}

func TestServiceRejectsMissingFields(t *testing.T) {
	svc := newTestService(t, Config{}, analytic.NewProvider(), newFakeCache(), newFakeRepo(), nil)

	req := delhiRequest()
	req.Latitude = nil
	_, err := svc.Compute(context.Background(), req)
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))
	require.Contains(t, err.Error(), "latitude")

	req = delhiRequest()
	year := 1500
	req.Year = &year
	_, err = svc.Compute(context.Background(), req)
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))
}

func TestServiceGetErrors(t *testing.T) {
	svc := newTestService(t, Config{}, analytic.NewProvider(), newFakeCache(), newFakeRepo(), nil)

	_, err := svc.Get(context.Background(), "not-a-uuid")
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))

	_, err = svc.Get(context.Background(), "1b4e28ba-2fa1-11d2-883f-0016d3cca427")
	require.True(t, apperrors.IsCode(err, CodeChartNotFound))
}

func TestServiceStorageFailuresDoNotFailCharts(t *testing.T) {
	repo := newFakeRepo()
	repo.saveErr = errors.New("database down")
	svc := newTestService(t, Config{}, analytic.NewProvider(), nil, repo, &fakeArchive{err: errors.New("bucket gone")})

	resp, err := svc.Compute(context.Background(), delhiRequest())
	require.NoError(t, err)
	require.Len(t, resp.Planets, 10)
}

func TestServiceLocale(t *testing.T) {
	svc := newTestService(t, Config{Locale: "sa"}, analytic.NewProvider(), nil, newFakeRepo(), nil)
	resp, err := svc.Compute(context.Background(), delhiRequest())
	require.NoError(t, err)
	require.Equal(t, "Vrishabha", *resp.Planets["sun"].Sign)

	_, err = NewService(Config{Locale: "xx"}, NewAssembler(Config{}, analytic.NewProvider(), astro.Lahiri{}), nil, newFakeRepo(), nil, testLogger())
	require.Error(t, err)
}

func TestCacheKeyDependsOnBackends(t *testing.T) {
	in := delhiInput()
	require.Equal(t, cacheKey(in, "analytic", "lahiri", "en"), cacheKey(in, "analytic", "lahiri", "en"))
	require.NotEqual(t, cacheKey(in, "analytic", "lahiri", "en"), cacheKey(in, "meeus", "lahiri", "en"))
	require.NotEqual(t, cacheKey(in, "analytic", "lahiri", "en"), cacheKey(in, "analytic", "iau2006", "en"))
	require.NotEqual(t, cacheKey(in, "analytic", "lahiri", "en"), cacheKey(in, "analytic", "lahiri", "ru"))
}

func newTestService(t *testing.T, cfg Config, eph astro.Ephemeris, cache Cache, repo Repository, archive Archive) Service {
	t.Helper()
	svc, err := NewService(cfg, NewAssembler(cfg, eph, astro.Lahiri{}), cache, repo, archive, testLogger())
	require.NoError(t, err)
	return svc
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func delhiRequest() Request {
	year, month, day, hour := 1990, 5, 15, 10
	minute, lat, lon, tz := 30.0, 28.6139, 77.209, 5.5
	return Request{
		Year: &year, Month: &month, Day: &day, Hour: &hour,
		Minute: &minute, Latitude: &lat, Longitude: &lon, TZOffset: &tz,
	}
}

type fakeCache struct {
	mu    sync.Mutex
	views map[string]ChartView
}

func newFakeCache() *fakeCache {
	return &fakeCache{views: make(map[string]ChartView)}
}

func (c *fakeCache) Get(_ context.Context, key string) (ChartView, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.views[key]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, view ChartView, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[key] = view
	return nil
}

func (c *fakeCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.views)
}

type fakeRepo struct {
	mu      sync.Mutex
	records map[string]Record
	saveErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]Record)}
}

func (r *fakeRepo) Save(_ context.Context, record Record) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = record
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id string) (Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	return rec, ok, nil
}

type fakeArchive struct {
	objects map[string][]byte
	order   []string
	err     error
}

func (a *fakeArchive) Put(_ context.Context, key string, data []byte, _ string) (StoredObject, error) {
	if a.err != nil {
		return StoredObject{}, a.err
	}
	if a.objects == nil {
		a.objects = make(map[string][]byte)
	}
	a.objects[key] = data
	a.order = append(a.order, key)
	return StoredObject{Key: key, Size: int64(len(data))}, nil
}

func (a *fakeArchive) keys() []string { return a.order }

func TestStatsForCountsFailures(t *testing.T) {
	deg := 1.0
	resp := Response{Cached: true, DurationMs: 3}
	resp.Planets = map[string]PlanetView{
		"sun": {Deg: &deg},
		"asc": {Error: "ascendant undefined"},
	}
	stats := statsFor(resp)
	require.Equal(t, 2, stats.Bodies)
	require.Equal(t, 1, stats.Failed)
	require.True(t, stats.CacheHit)
	require.True(t, stats.IsDegraded())
}
