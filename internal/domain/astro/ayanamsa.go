package astro

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAyanamsa marks a failed ayanamsa evaluation. Every sidereal value
// depends on it, so callers treat it as fatal.
var ErrAyanamsa = errors.New("ayanamsa unavailable")

// AyanamsaProvider returns the tropical-to-sidereal offset in degrees.
type AyanamsaProvider interface {
	Name() string
	Ayanamsa(jd float64) (float64, error)
}

const (
	// AyanamsaLahiri selects the reference quadratic model.
	AyanamsaLahiri = "lahiri"
	// AyanamsaIAU2006 selects the precession-based model.
	AyanamsaIAU2006 = "iau2006"

	// Lahiri reference polynomial, T in Julian centuries from 1900-01-01T12:00Z.
	lahiriEpochJD = 2415020.0
	lahiriA0      = 22.460148
	lahiriA1      = 1.396042
	lahiriA2      = 0.000308

	// Lahiri ayanamsa at J2000, the anchor of the precession model.
	lahiriAtJ2000 = 23.857092

	// AyanamsaTolerance bounds the disagreement between providers.
	AyanamsaTolerance = 0.01
)

// Lahiri is the reference ayanamsa: a0 + a1*T + a2*T^2.
type Lahiri struct{}

func (Lahiri) Name() string { return AyanamsaLahiri }

func (Lahiri) Ayanamsa(jd float64) (float64, error) {
	if !finite(jd) {
		return 0, fmt.Errorf("%w: non-finite julian day", ErrAyanamsa)
	}
	t := (jd - lahiriEpochJD) / DaysPerCentury
	return lahiriA0 + lahiriA1*t + lahiriA2*t*t, nil
}

// IAU2006 anchors the Lahiri value at J2000 and drifts it by the IAU 2006
// general precession in longitude. It stays within AyanamsaTolerance of
// Lahiri between 1600 and 2400.
type IAU2006 struct{}

func (IAU2006) Name() string { return AyanamsaIAU2006 }

func (IAU2006) Ayanamsa(jd float64) (float64, error) {
	if !finite(jd) {
		return 0, fmt.Errorf("%w: non-finite julian day", ErrAyanamsa)
	}
	return lahiriAtJ2000 + PrecessionInLongitude(jd), nil
}

// PrecessionInLongitude is the accumulated general precession since J2000, in degrees.
func PrecessionInLongitude(jd float64) float64 {
	t := CenturiesSinceJ2000(jd)
	return (5028.796195*t + 1.1054348*t*t) / 3600
}

// NewAyanamsa resolves a provider by name.
func NewAyanamsa(name string) (AyanamsaProvider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", AyanamsaLahiri:
		return Lahiri{}, nil
	case AyanamsaIAU2006:
		return IAU2006{}, nil
	default:
		return nil, fmt.Errorf("unknown ayanamsa model %q", name)
	}
}
