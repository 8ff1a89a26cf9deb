package chart

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/natal-chart/internal/domain/astro"
	apperrors "github.com/yanqian/natal-chart/pkg/errors"
)

func TestRequestDecodingAndDefaults(t *testing.T) {
	var req Request
	body := `{"year":1990,"month":5,"day":15,"hour":10,"minute":30,"latitude":28.6139,"longitude":77.209}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	in, err := req.BirthInput(1600, 2400)
	require.NoError(t, err)
	require.Zero(t, in.UTCOffsetHours)
	require.Equal(t, 30.0, in.Minute)
}

func TestRequestListsMissingFields(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{"year":1990,"month":5}`), &req))

	_, err := req.BirthInput(1600, 2400)
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))
	require.Equal(t, "missing parameters: day, hour, minute, latitude, longitude", err.Error())
}

func TestRequestRejectsOutOfRangeValues(t *testing.T) {
	req := delhiRequest()
	lat := 91.0
	req.Latitude = &lat
	_, err := req.BirthInput(1600, 2400)
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))
	require.ErrorIs(t, err, astro.ErrInvalidInput)
}

func TestRenderShapes(t *testing.T) {
	c := Chart{
		Instant:   time.Date(1990, 5, 15, 5, 0, 0, 0, time.UTC),
		JulianDay: 2448026.708333,
		Ayanamsa:  23.7219669,
		Placements: []Placement{
			resolved(astro.Sun, 54.1196, 23.7219669),
			failed(astro.Mars, CodeEphemerisUnavailable, errors.New("engine crashed")),
		},
	}
	view := Render(c, mustSigns(t, "en"))
	require.Equal(t, "1990-05-15T05:00:00.000Z", view.Date)
	require.Equal(t, 23.722, view.Ayanamsa)

	sun := view.Planets["sun"]
	require.True(t, sun.OK())
	require.Equal(t, 30.398, *sun.Deg)
	require.Equal(t, "Taurus", *sun.Sign)
	require.Equal(t, 0.398, *sun.DegInSign)
	require.Equal(t, "0°24'", *sun.DegInSignStr)

	raw, err := json.Marshal(view.Planets["mars"])
	require.NoError(t, err)
	require.JSONEq(t, `{"deg":null,"sign":null,"deg_in_sign":null,"deg_in_sign_str":null,"error":"mars unavailable: engine crashed"}`, string(raw))
}

func TestRenderWrapsRoundedLongitude(t *testing.T) {
	c := Chart{
		Instant:    time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		Placements: []Placement{fromSidereal(astro.Rahu, 359.9996, 0)},
	}
	rahu := Render(c, mustSigns(t, "en")).Planets["rahu"]
	require.True(t, rahu.OK())
	require.Equal(t, 0.0, *rahu.Deg)
	require.Equal(t, "Aries", *rahu.Sign)
	require.Equal(t, 0.0, *rahu.DegInSign)
	require.Equal(t, "0°00'", *rahu.DegInSignStr)
}

func TestFailedKeepsExistingCode(t *testing.T) {
	inner := apperrors.Wrap(CodeAscendantUndefined, "no ascendant", astro.ErrAscendantUndefined)
	p := failed(astro.Ascendant, CodeEphemerisUnavailable, inner)
	require.True(t, apperrors.IsCode(p.Err, CodeAscendantUndefined))
	require.False(t, p.OK())
}

func mustSigns(t *testing.T, locale string) astro.SignNames {
	t.Helper()
	names, err := astro.SignNamesFor(locale)
	require.NoError(t, err)
	return names
}
