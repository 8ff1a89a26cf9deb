package meeus

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonposition"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/yanqian/natal-chart/internal/domain/astro"
)

// Name is the configuration key of this backend.
const Name = "meeus"

var vsopBodies = map[astro.Body]int{
	astro.Mercury: pp.Mercury,
	astro.Venus:   pp.Venus,
	astro.Mars:    pp.Mars,
	astro.Jupiter: pp.Jupiter,
	astro.Saturn:  pp.Saturn,
}

// Provider delegates to github.com/soniakeys/meeus. The Moon always
// resolves. Planets need the VSOP87B files; without them they report
// astro.ErrEphemerisUnavailable and the Sun falls back to the solar series.
type Provider struct {
	earth   *pp.V87Planet
	planets map[astro.Body]*pp.V87Planet
}

// NewProvider loads whatever VSOP87 files are present under vsopDir.
func NewProvider(vsopDir string, logger *slog.Logger) *Provider {
	logger = logger.With("component", "ephemeris.meeus")
	p := &Provider{planets: make(map[astro.Body]*pp.V87Planet, len(vsopBodies))}
	dir := strings.TrimSpace(vsopDir)
	if dir == "" {
		logger.Info("vsop87 directory not set, only sun and moon available")
		return p
	}

	earth, err := pp.LoadPlanetPath(pp.Earth, dir)
	if err != nil {
		logger.Warn("vsop87 earth data unavailable", "dir", dir, "error", err)
		return p
	}
	p.earth = earth
	for body, ibody := range vsopBodies {
		planet, err := pp.LoadPlanetPath(ibody, dir)
		if err != nil {
			logger.Warn("vsop87 planet data unavailable", "body", body, "dir", dir, "error", err)
			continue
		}
		p.planets[body] = planet
	}
	logger.Info("vsop87 data loaded", "dir", dir, "planets", len(p.planets))
	return p
}

func (p *Provider) Name() string { return Name }

// Longitude implements astro.Ephemeris.
func (p *Provider) Longitude(ctx context.Context, body astro.Body, instant time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", astro.ErrEphemerisUnavailable, body, err)
	}
	jd := astro.JulianDay(instant)

	switch body {
	case astro.Moon:
		lon, _, _ := moonposition.Position(jd)
		return astro.NormalizeDegrees(lon.Deg()), nil
	case astro.Sun:
		if p.earth != nil {
			l, _, _ := p.earth.Position(jd)
			return astro.NormalizeDegrees(l.Deg() + 180), nil
		}
		lon, _ := solar.True(base.J2000Century(jd))
		return astro.NormalizeDegrees(lon.Deg()), nil
	}

	if _, ok := vsopBodies[body]; !ok {
		return 0, fmt.Errorf("%w: %s", astro.ErrUnsupportedBody, body)
	}
	planet, ok := p.planets[body]
	if !ok || p.earth == nil {
		return 0, fmt.Errorf("%w: vsop87 data for %s not loaded", astro.ErrEphemerisUnavailable, body)
	}

	el, eb, er := p.earth.Position(jd)
	pl, pb, pr := planet.Position(jd)
	ex, ey := rectangular(el.Rad(), eb.Rad(), er)
	px, py := rectangular(pl.Rad(), pb.Rad(), pr)
	lon := math.Atan2(py-ey, px-ex) * 180 / math.Pi
	return astro.NormalizeDegrees(lon), nil
}

func rectangular(l, b, r float64) (x, y float64) {
	return r * math.Cos(b) * math.Cos(l), r * math.Cos(b) * math.Sin(l)
}

var _ astro.Ephemeris = (*Provider)(nil)
