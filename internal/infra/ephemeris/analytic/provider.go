package analytic

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/yanqian/natal-chart/internal/domain/astro"
)

// Name is the configuration key of this backend.
const Name = "analytic"

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// Provider evaluates closed-form series in process and needs no data files.
// Planets come from JPL mean Keplerian elements: the Sun stays within about
// 0.001 degrees, Mercury to Mars within about 0.01 degrees, Jupiter and
// Saturn within about 0.2 degrees over 1800-2050 and worse outside it. The
// Moon comes from the principal ELP terms (about 10 arc-seconds). All are
// geometric positions referred to the mean equinox of date. The meeus
// backend with VSOP87 files is the precise alternative.
type Provider struct{}

// NewProvider constructs the analytic backend.
func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string { return Name }

// Longitude implements astro.Ephemeris.
func (p *Provider) Longitude(ctx context.Context, body astro.Body, instant time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", astro.ErrEphemerisUnavailable, body, err)
	}
	jd := astro.JulianDay(instant)
	lon, err := longitudeAt(body, jd)
	if err != nil {
		return 0, err
	}
	return astro.NormalizeDegrees(lon), nil
}

func longitudeAt(body astro.Body, jd float64) (float64, error) {
	t := astro.CenturiesSinceJ2000(jd)
	switch body {
	case astro.Moon:
		return moonLongitude(t), nil
	case astro.Sun:
		// Geocentric Sun = heliocentric Earth + 180.
		earth := orbitsAt(jd)["earth"].heliocentric(t)
		return earth.longitude() + 180 + astro.PrecessionInLongitude(jd), nil
	case astro.Mercury, astro.Venus, astro.Mars, astro.Jupiter, astro.Saturn:
		orbits := orbitsAt(jd)
		earth := orbits["earth"].heliocentric(t)
		planet := orbits[string(body)].heliocentric(t)
		return planet.sub(earth).longitude() + astro.PrecessionInLongitude(jd), nil
	default:
		return 0, fmt.Errorf("%w: %s", astro.ErrUnsupportedBody, body)
	}
}

var _ astro.Ephemeris = (*Provider)(nil)
