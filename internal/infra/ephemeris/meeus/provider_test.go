package meeus

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/natal-chart/internal/domain/astro"
)

func newTestProvider() *Provider {
	return NewProvider("", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fromJD converts a Julian Day back to a UTC instant.
func fromJD(jd float64) time.Time {
	secs := (jd - 2440587.5) * 86400
	return time.Unix(0, 0).UTC().Add(time.Duration(secs * float64(time.Second)))
}

func TestMoonLongitude(t *testing.T) {
	lon, err := newTestProvider().Longitude(context.Background(), astro.Moon, fromJD(2448724.5))
	require.NoError(t, err)
	require.InDelta(t, 133.162655, lon, 1e-4)
}

func TestSunFallsBackToSolarSeries(t *testing.T) {
	lon, err := newTestProvider().Longitude(context.Background(), astro.Sun, fromJD(2448908.5))
	require.NoError(t, err)
	require.InDelta(t, 199.90988, lon, 1e-3)
}

func TestPlanetsNeedVSOPData(t *testing.T) {
	p := newTestProvider()
	for _, body := range []astro.Body{astro.Mercury, astro.Venus, astro.Mars, astro.Jupiter, astro.Saturn} {
		_, err := p.Longitude(context.Background(), body, time.Now())
		require.ErrorIs(t, err, astro.ErrEphemerisUnavailable, body)
		require.NotErrorIs(t, err, astro.ErrUnsupportedBody, body)
	}
}

func TestUnsupportedBody(t *testing.T) {
	_, err := newTestProvider().Longitude(context.Background(), astro.Ketu, time.Now())
	require.ErrorIs(t, err, astro.ErrUnsupportedBody)
}
