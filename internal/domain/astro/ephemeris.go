package astro

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrEphemerisUnavailable marks a longitude the backend could not evaluate.
// It is a per-body failure; callers keep computing the other bodies.
var ErrEphemerisUnavailable = errors.New("ephemeris unavailable")

// ErrUnsupportedBody is returned when a backend has no model for a body at all.
// Retrying it is pointless.
var ErrUnsupportedBody = fmt.Errorf("%w: body not supported by backend", ErrEphemerisUnavailable)

// Ephemeris resolves tropical ecliptic longitudes of date.
//
// Implementations return geocentric longitudes in degrees, normalized to
// [0, 360). The Sun is the geocentric Sun, i.e. the heliocentric Earth
// longitude plus 180 degrees.
type Ephemeris interface {
	Name() string
	Longitude(ctx context.Context, body Body, instant time.Time) (float64, error)
}
