package chart

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/natal-chart/internal/domain/astro"
	apperrors "github.com/yanqian/natal-chart/pkg/errors"
)

// Assembler runs the pipeline: time, ayanamsa, per-body longitudes, sidereal
// correction, classification. Nodes and ascendant are independent branches
// joined at the end. It has no side effects and does not log.
type Assembler struct {
	cfg       Config
	ephemeris astro.Ephemeris
	ayanamsa  astro.AyanamsaProvider
}

// NewAssembler wires the pipeline to its backends.
func NewAssembler(cfg Config, ephemeris astro.Ephemeris, ayanamsa astro.AyanamsaProvider) *Assembler {
	return &Assembler{cfg: cfg.withDefaults(), ephemeris: ephemeris, ayanamsa: ayanamsa}
}

// Backends names the ephemeris and ayanamsa models in use.
func (a *Assembler) Backends() (ephemeris, ayanamsa string) {
	return a.ephemeris.Name(), a.ayanamsa.Name()
}

// Assemble computes a chart. Only invalid input, time conversion and
// ayanamsa failures abort; anything else degrades the affected placement.
func (a *Assembler) Assemble(ctx context.Context, in astro.BirthInput) (Chart, error) {
	moment, err := astro.NormalizeTime(in)
	if err != nil {
		if errors.Is(err, astro.ErrInvalidInput) {
			return Chart{}, apperrors.Wrap(CodeInvalidInput, "invalid birth data", err)
		}
		return Chart{}, apperrors.Wrap(CodeTimeConversion, "julian day calculation failed", err)
	}

	ayanamsa, err := a.ayanamsa.Ayanamsa(moment.JulianDay)
	if err != nil {
		return Chart{}, apperrors.Wrap(CodeAyanamsaFailed, "ayanamsa calculation failed", err)
	}

	planets := astro.Planets()
	placements := make([]Placement, len(planets), len(planets)+3)
	var g errgroup.Group
	for i, body := range planets {
		i, body := i, body
		g.Go(func() error {
			placements[i] = a.placePlanet(ctx, body, moment, ayanamsa)
			return nil
		})
	}

	rahu, ketu := astro.SiderealNodes(moment.JulianDay, ayanamsa)
	nodes := []Placement{
		fromSidereal(astro.Rahu, rahu, ayanamsa),
		fromSidereal(astro.Ketu, ketu, ayanamsa),
	}

	var asc Placement
	if lon, err := astro.AscendantLongitude(moment.JulianDay, in.Latitude, in.Longitude); err != nil {
		asc = failed(astro.Ascendant, CodeAscendantUndefined, err)
	} else {
		asc = resolved(astro.Ascendant, lon, ayanamsa)
	}

	_ = g.Wait()
	placements = append(placements, nodes...)
	placements = append(placements, asc)

	return Chart{
		Instant:    moment.Instant,
		JulianDay:  moment.JulianDay,
		Ayanamsa:   ayanamsa,
		Ephemeris:  a.ephemeris.Name(),
		Placements: placements,
	}, nil
}

func (a *Assembler) placePlanet(ctx context.Context, body astro.Body, moment astro.Moment, ayanamsa float64) Placement {
	lon, err := a.lookup(ctx, body, moment)
	if err == nil && !isFinite(lon) {
		err = fmt.Errorf("%w: %s: non-finite longitude", astro.ErrEphemerisUnavailable, body)
	}
	if err != nil && !errors.Is(err, astro.ErrEphemerisUnavailable) {
		err = fmt.Errorf("%w: %s: %w", astro.ErrEphemerisUnavailable, body, err)
	}
	if err != nil {
		return failed(body, CodeEphemerisUnavailable, err)
	}
	return resolved(body, lon, ayanamsa)
}

// lookup allows one immediate retry when configured; unsupported bodies and
// a cancelled parent context are never retried.
func (a *Assembler) lookup(ctx context.Context, body astro.Body, moment astro.Moment) (float64, error) {
	lon, err := a.lookupOnce(ctx, body, moment)
	if err != nil && a.cfg.RetryOnce && ctx.Err() == nil && !errors.Is(err, astro.ErrUnsupportedBody) {
		lon, err = a.lookupOnce(ctx, body, moment)
	}
	return lon, err
}

// lookupOnce bounds a single backend call by the per-body timeout. A backend
// that ignores its context still finishes in the background; the buffered
// channel lets that goroutine exit.
func (a *Assembler) lookupOnce(ctx context.Context, body astro.Body, moment astro.Moment) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.BodyTimeout)
	defer cancel()

	type result struct {
		lon float64
		err error
	}
	done := make(chan result, 1)
	go func() {
		lon, err := a.ephemeris.Longitude(ctx, body, moment.Instant)
		done <- result{lon: lon, err: err}
	}()

	select {
	case r := <-done:
		return r.lon, r.err
	case <-ctx.Done():
		return 0, fmt.Errorf("%w: %s lookup: %w", astro.ErrEphemerisUnavailable, body, ctx.Err())
	}
}
