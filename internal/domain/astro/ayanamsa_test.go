package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLahiriAtJ2000(t *testing.T) {
	got, err := Lahiri{}.Ayanamsa(J2000)
	require.NoError(t, err)
	require.InDelta(t, 23.85, got, AyanamsaTolerance)
}

func TestAyanamsaIsMonotonic(t *testing.T) {
	for _, provider := range []AyanamsaProvider{Lahiri{}, IAU2006{}} {
		t.Run(provider.Name(), func(t *testing.T) {
			start := JulianDay(time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC))
			end := JulianDay(time.Date(2400, 12, 31, 0, 0, 0, 0, time.UTC))
			prev, err := provider.Ayanamsa(start)
			require.NoError(t, err)
			for jd := start + 365.25; jd <= end; jd += 365.25 {
				cur, err := provider.Ayanamsa(jd)
				require.NoError(t, err)
				require.GreaterOrEqual(t, cur, prev)
				prev = cur
			}
		})
	}
}

func TestIAU2006TracksLahiri(t *testing.T) {
	for year := 1600; year <= 2400; year += 25 {
		jd := JulianDay(time.Date(year, 1, 1, 12, 0, 0, 0, time.UTC))
		ref, err := Lahiri{}.Ayanamsa(jd)
		require.NoError(t, err)
		alt, err := IAU2006{}.Ayanamsa(jd)
		require.NoError(t, err)
		require.InDelta(t, ref, alt, AyanamsaTolerance, "year %d", year)
	}
}

func TestNewAyanamsa(t *testing.T) {
	p, err := NewAyanamsa("")
	require.NoError(t, err)
	require.Equal(t, AyanamsaLahiri, p.Name())

	p, err = NewAyanamsa("IAU2006")
	require.NoError(t, err)
	require.Equal(t, AyanamsaIAU2006, p.Name())

	_, err = NewAyanamsa("raman")
	require.Error(t, err)
}
