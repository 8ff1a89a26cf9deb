package analytic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/natal-chart/internal/domain/astro"
)

func TestMoonMatchesReferenceSeries(t *testing.T) {
	// Meeus example 47.a, 1992-04-12 0h TD.
	lon := astro.NormalizeDegrees(moonLongitude(astro.CenturiesSinceJ2000(2448724.5)))
	require.InDelta(t, 133.162655, lon, 1e-5)
}

func TestSunIsGeocentric(t *testing.T) {
	// Meeus example 25.b, 1992-10-13 0h TD, geometric longitude from full VSOP87.
	lon, err := longitudeAt(astro.Sun, 2448908.5)
	require.NoError(t, err)
	require.InDelta(t, 199.907372, astro.NormalizeDegrees(lon), 0.001)
}

func TestVenusHeliocentricLongitude(t *testing.T) {
	// Meeus example 32.a, 1992-12-20 0h TD, full VSOP87.
	jd := 2448976.5
	venus := orbitsAt(jd)["venus"].heliocentric(astro.CenturiesSinceJ2000(jd))
	lon := astro.NormalizeDegrees(venus.longitude() + astro.PrecessionInLongitude(jd))
	require.InDelta(t, 26.11428, lon, 0.01)
}

func TestVenusGeocentricLongitude(t *testing.T) {
	// Meeus example 33.a, 1992-12-20 0h TD.
	lon, err := longitudeAt(astro.Venus, 2448976.5)
	require.NoError(t, err)
	require.InDelta(t, 313.08102, astro.NormalizeDegrees(lon), 0.01)
}

func TestElementSetFollowsEpoch(t *testing.T) {
	require.Equal(t, recentOrbits["saturn"], orbitsAt(recentFrom)["saturn"])
	require.Equal(t, recentOrbits["saturn"], orbitsAt(astro.J2000)["saturn"])
	require.Equal(t, recentOrbits["saturn"], orbitsAt(recentTo)["saturn"])
	require.Equal(t, longRangeOrbits["saturn"], orbitsAt(recentFrom-1)["saturn"])
	require.Equal(t, longRangeOrbits["saturn"], orbitsAt(recentTo+1)["saturn"])
}

func TestElementSetsAgreeAtTheirSeams(t *testing.T) {
	tolerance := map[astro.Body]float64{
		astro.Sun: 0.01, astro.Mercury: 0.01, astro.Venus: 0.01, astro.Mars: 0.05,
		astro.Jupiter: 0.2, astro.Saturn: 0.5,
	}
	for _, jd := range []float64{recentFrom, recentTo} {
		for body, tol := range tolerance {
			drift := astro.AngularDistance(geocentric(recentOrbits, body, jd), geocentric(longRangeOrbits, body, jd))
			require.Less(t, drift, tol, "%s at %v", body, jd)
		}
	}
}

func TestLongRangeCoversSupportedYears(t *testing.T) {
	p := NewProvider()
	for _, year := range []int{1600, 1799, 2051, 2400} {
		instant := time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
		for _, body := range astro.Planets() {
			lon, err := p.Longitude(context.Background(), body, instant)
			require.NoError(t, err, "%s %d", body, year)
			require.GreaterOrEqual(t, lon, 0.0)
			require.Less(t, lon, 360.0)
		}
	}
}

func geocentric(orbits map[string]orbit, body astro.Body, jd float64) float64 {
	t := astro.CenturiesSinceJ2000(jd)
	earth := orbits["earth"].heliocentric(t)
	if body == astro.Sun {
		return earth.longitude() + 180
	}
	return orbits[string(body)].heliocentric(t).sub(earth).longitude()
}

func TestProviderCoversAllPlanets(t *testing.T) {
	p := NewProvider()
	instant := time.Date(1990, 5, 15, 5, 0, 0, 0, time.UTC)
	for _, body := range astro.Planets() {
		lon, err := p.Longitude(context.Background(), body, instant)
		require.NoError(t, err, body)
		require.GreaterOrEqual(t, lon, 0.0)
		require.Less(t, lon, 360.0)
	}
}

func TestProviderRejectsDerivedPoints(t *testing.T) {
	_, err := NewProvider().Longitude(context.Background(), astro.Rahu, time.Now())
	require.ErrorIs(t, err, astro.ErrUnsupportedBody)
	require.ErrorIs(t, err, astro.ErrEphemerisUnavailable)
}

func TestProviderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewProvider().Longitude(ctx, astro.Mars, time.Now())
	require.ErrorIs(t, err, astro.ErrEphemerisUnavailable)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSolveKeplerCircularOrbit(t *testing.T) {
	require.InDelta(t, 1.234, solveKepler(1.234, 0), 1e-12)
}
