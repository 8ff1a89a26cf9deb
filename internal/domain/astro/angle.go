package astro

import "math"

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// NormalizeDegrees maps an angle onto [0, 360).
func NormalizeDegrees(deg float64) float64 {
	x := math.Mod(deg, 360)
	if x < 0 {
		x += 360
	}
	// x+360 rounds up to 360 for tiny negative inputs.
	if x >= 360 {
		x = 0
	}
	return x
}

// ToSidereal applies the ayanamsa correction to a tropical longitude.
func ToSidereal(tropical, ayanamsa float64) float64 {
	return NormalizeDegrees(tropical - ayanamsa)
}

// ToTropical reverses ToSidereal.
func ToTropical(sidereal, ayanamsa float64) float64 {
	return NormalizeDegrees(sidereal + ayanamsa)
}

// AngularDistance is the smallest separation between two longitudes, in [0, 180].
func AngularDistance(a, b float64) float64 {
	d := NormalizeDegrees(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

func sinDeg(deg float64) float64 { return math.Sin(deg * degToRad) }
func cosDeg(deg float64) float64 { return math.Cos(deg * degToRad) }

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
