package chart

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/natal-chart/internal/domain/astro"
	apperrors "github.com/yanqian/natal-chart/pkg/errors"
	"github.com/yanqian/natal-chart/pkg/metrics"
	"github.com/yanqian/natal-chart/pkg/util"
)

// Service exposes natal chart capabilities.
type Service interface {
	Compute(ctx context.Context, req Request) (Response, error)
	Get(ctx context.Context, id string) (Response, error)
}

type service struct {
	cfg       Config
	assembler *Assembler
	cache     Cache
	repo      Repository
	archive   Archive
	signs     astro.SignNames
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// NewService wires up the chart domain. archive may be nil.
func NewService(cfg Config, assembler *Assembler, cache Cache, repo Repository, archive Archive, logger *slog.Logger) (Service, error) {
	cfg = cfg.withDefaults()
	signs, err := astro.SignNamesFor(cfg.Locale)
	if err != nil {
		return nil, err
	}
	return &service{
		cfg:       cfg,
		assembler: assembler,
		cache:     cache,
		repo:      repo,
		archive:   archive,
		signs:     signs,
		logger:    logger.With("component", "chart.service"),
		now:       util.NowUTC,
		newID:     uuid.NewString,
	}, nil
}

func (s *service) Compute(ctx context.Context, req Request) (Response, error) {
	start := s.now()
	in, err := req.BirthInput(s.cfg.MinYear, s.cfg.MaxYear)
	if err != nil {
		return Response{}, err
	}

	ephemeris, ayanamsa := s.assembler.Backends()
	key := cacheKey(in, ephemeris, ayanamsa, s.cfg.Locale)

	view, cached := s.fromCache(ctx, key)
	if !cached {
		c, err := s.assembler.Assemble(ctx, in)
		if err != nil {
			return Response{}, err
		}
		view = Render(c, s.signs)
		if degraded := c.Failed(); len(degraded) > 0 {
			s.logger.Warn("chart degraded", "failed", degraded, "jd", c.JulianDay)
		}
		if cacheable(c) {
			s.toCache(ctx, key, view)
		}
	}

	record := Record{
		ID:            s.newID(),
		CreatedAt:     start,
		Owner:         req.Owner,
		Input:         in,
		Ephemeris:     ephemeris,
		AyanamsaModel: ayanamsa,
		View:          view,
	}
	s.persist(ctx, record)

	resp := toResponse(record)
	resp.Cached = cached
	resp.DurationMs = s.now().Sub(start).Milliseconds()
	s.logger.Info("chart computed", "id", resp.ID, "stats", statsFor(resp))
	return resp, nil
}

func (s *service) Get(ctx context.Context, id string) (Response, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Response{}, apperrors.Wrap(CodeInvalidInput, "chart id must be a uuid", err)
	}
	record, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return Response{}, apperrors.Wrap(CodeChartError, "failed to load chart", err)
	}
	if !found {
		return Response{}, apperrors.Wrap(CodeChartNotFound, "chart not found", nil)
	}
	return toResponse(record), nil
}

func (s *service) fromCache(ctx context.Context, key string) (ChartView, bool) {
	if s.cache == nil {
		return ChartView{}, false
	}
	view, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("chart cache read failed", "error", err)
		return ChartView{}, false
	}
	if found {
		s.logger.Debug("chart cache hit", "key", key)
	}
	return view, found
}

func (s *service) toCache(ctx context.Context, key string, view ChartView) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, view, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("chart cache write failed", "error", err)
	}
}

// persist stores the record and its snapshot. Storage failures never fail
// the computation.
func (s *service) persist(ctx context.Context, record Record) {
	if s.repo != nil {
		if err := s.repo.Save(ctx, record); err != nil {
			s.logger.Error("chart save failed", "id", record.ID, "error", err)
		}
	}
	if s.archive == nil {
		return
	}
	payload, err := json.Marshal(record)
	if err != nil {
		s.logger.Error("chart snapshot encode failed", "id", record.ID, "error", err)
		return
	}
	if _, err := s.archive.Put(ctx, archiveKey(record), payload, "application/json"); err != nil {
		s.logger.Error("chart snapshot upload failed", "id", record.ID, "error", err)
	}
}

func toResponse(record Record) Response {
	return Response{
		ID:            record.ID,
		CreatedAt:     record.CreatedAt,
		Ephemeris:     record.Ephemeris,
		AyanamsaModel: record.AyanamsaModel,
		ChartView:     record.View,
	}
}

func statsFor(resp Response) metrics.ChartStats {
	stats := metrics.ChartStats{
		Bodies:     len(resp.Planets),
		CacheHit:   resp.Cached,
		DurationMs: resp.DurationMs,
	}
	for _, p := range resp.Planets {
		if !p.OK() {
			stats.Failed++
		}
	}
	return stats
}

// cacheable rejects charts with ephemeris failures; those may be transient.
func cacheable(c Chart) bool {
	for _, p := range c.Placements {
		if !p.OK() && apperrors.IsCode(p.Err, CodeEphemerisUnavailable) {
			return false
		}
	}
	return true
}

func cacheKey(in astro.BirthInput, ephemeris, ayanamsa, locale string) string {
	canonical := fmt.Sprintf("%d|%d|%d|%d|%.6f|%.6f|%.6f|%.4f|%s|%s|%s",
		in.Year, in.Month, in.Day, in.Hour, in.Minute, in.Latitude, in.Longitude, in.UTCOffsetHours,
		ephemeris, ayanamsa, locale)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

func archiveKey(record Record) string {
	return fmt.Sprintf("charts/%s/%s.json", record.CreatedAt.Format("2006/01/02"), record.ID)
}
