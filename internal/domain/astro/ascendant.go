package astro

import (
	"errors"
	"fmt"
	"math"
)

// ErrAscendantUndefined marks a latitude or instant where the eastern horizon
// does not cut the ecliptic at a single well-defined point.
var ErrAscendantUndefined = errors.New("ascendant undefined")

const (
	// PolarLatitudeLimit is the largest |latitude| the ascendant is computed for.
	PolarLatitudeLimit = 89.9

	degenerateEpsilon = 1e-12
)

// GreenwichSiderealTime is the mean sidereal time at Greenwich, in degrees.
func GreenwichSiderealTime(jd float64) float64 {
	t := CenturiesSinceJ2000(jd)
	theta := 280.46061837 + 360.98564736629*(jd-J2000) + 0.000387933*t*t - t*t*t/38710000
	return NormalizeDegrees(theta)
}

// LocalSiderealTime shifts GMST by the east longitude of the observer.
func LocalSiderealTime(jd, longitude float64) float64 {
	return NormalizeDegrees(GreenwichSiderealTime(jd) + longitude)
}

// MeanObliquity of the ecliptic, in degrees.
func MeanObliquity(jd float64) float64 {
	t := CenturiesSinceJ2000(jd)
	return 23.4392911 - 0.0130042*t - 1.64e-7*t*t + 5.04e-7*t*t*t
}

// AscendantLongitude returns the tropical longitude of the ecliptic point
// rising on the eastern horizon for an observer at latitude/longitude (east
// positive).
func AscendantLongitude(jd, latitude, longitude float64) (float64, error) {
	if !finite(jd, latitude, longitude) {
		return 0, fmt.Errorf("%w: non-finite input", ErrAscendantUndefined)
	}
	if math.Abs(latitude) > PolarLatitudeLimit {
		return 0, fmt.Errorf("%w: latitude %g beyond +/-%g", ErrAscendantUndefined, latitude, PolarLatitudeLimit)
	}

	ramc := LocalSiderealTime(jd, longitude)
	eps := MeanObliquity(jd)

	y := cosDeg(ramc)
	x := -(sinDeg(ramc)*cosDeg(eps) + math.Tan(latitude*degToRad)*sinDeg(eps))
	// Horizon and ecliptic coincide.
	if math.Abs(x) < degenerateEpsilon && math.Abs(y) < degenerateEpsilon {
		return 0, fmt.Errorf("%w: horizon coincides with the ecliptic", ErrAscendantUndefined)
	}

	asc := math.Atan2(y, x) * radToDeg
	if !finite(asc) {
		return 0, fmt.Errorf("%w: non-finite result", ErrAscendantUndefined)
	}
	// Inside the polar circles the atan2 form can land on the descendant.
	if hourAngleSine(asc, ramc, eps) > 0 {
		asc += 180
	}
	return NormalizeDegrees(asc), nil
}

// hourAngleSine is sin(H) of an ecliptic point; negative east of the meridian.
func hourAngleSine(lon, ramc, eps float64) float64 {
	ra := math.Atan2(sinDeg(lon)*cosDeg(eps), cosDeg(lon)) * radToDeg
	return sinDeg(ramc - ra)
}
