package astro

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		lon       float64
		sign      int
		degree    float64
		formatted string
	}{
		{0.0, 0, 0, "0°00'"},
		{30.0, 1, 0, "0°00'"},
		{360.0, 0, 0, "0°00'"},
		{29.9998, 1, 0, "0°00'"},
		{359.999, 0, 0, "0°00'"},
		{359.99, 11, 29.99, "29°59'"},
		{45.5, 1, 15.5, "15°30'"},
		{-10, 11, 20, "20°00'"},
		{12.9999, 0, 12.9999, "13°00'"},
	}
	for _, tc := range tests {
		pos := Classify(tc.lon)
		require.Equal(t, tc.sign, pos.Sign, "lon %v", tc.lon)
		require.InDelta(t, tc.degree, pos.DegreeInSign, 1e-9, "lon %v", tc.lon)
		require.Equal(t, tc.formatted, pos.Formatted, "lon %v", tc.lon)
	}
}

func TestClassifySignIndexProperty(t *testing.T) {
	for l := -720.0; l < 720; l += 0.373 {
		norm := NormalizeDegrees(l)
		pos := Classify(l)
		require.GreaterOrEqual(t, pos.DegreeInSign, 0.0)
		require.Less(t, pos.DegreeInSign, 30.0)
		// Only the last half arc-minute of a sign carries forward.
		if math.Mod(norm, 30) >= 30-0.5/60 {
			continue
		}
		require.Equal(t, int(math.Floor(norm/30)), pos.Sign, "lon %v", l)
	}
}

func TestSiderealRoundTrip(t *testing.T) {
	for tropical := 0.0; tropical < 360; tropical += 7.77 {
		for _, ayanamsa := range []float64{18.27, 23.8565, 29.45} {
			sidereal := ToSidereal(tropical, ayanamsa)
			require.InDelta(t, math.Mod(tropical-ayanamsa+360, 360), sidereal, 1e-9)
			require.Less(t, AngularDistance(tropical, ToTropical(sidereal, ayanamsa)), 1e-9)
		}
	}
}

func TestNormalizeDegrees(t *testing.T) {
	require.Equal(t, 0.0, NormalizeDegrees(360))
	require.Equal(t, 0.0, NormalizeDegrees(-1e-18))
	require.InDelta(t, 350.0, NormalizeDegrees(-10), 1e-12)
	require.InDelta(t, 10.0, NormalizeDegrees(730), 1e-12)
}

func TestSignNamesFor(t *testing.T) {
	en, err := SignNamesFor("")
	require.NoError(t, err)
	require.Equal(t, "Aries", en.Name(0))
	require.Equal(t, "Pisces", en.Name(11))

	ru, err := SignNamesFor("RU")
	require.NoError(t, err)
	require.Equal(t, "Овен", ru.Name(0))
	require.Equal(t, "Рыбы", ru.Name(11))

	_, err = SignNamesFor("xx")
	require.Error(t, err)
}
