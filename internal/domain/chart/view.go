package chart

import (
	"math"
	"time"

	"github.com/yanqian/natal-chart/internal/domain/astro"
)

// isoMillis is ISO 8601 with milliseconds, e.g. 1990-05-15T05:00:00.000Z.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// ChartView is the serialized chart. Degrees are rounded to three decimals
// here and nowhere else.
type ChartView struct {
	Date     string                `json:"date"`
	JD       float64               `json:"jd"`
	Ayanamsa float64               `json:"ayanamsa"`
	Planets  map[string]PlanetView `json:"planets"`
}

// PlanetView is one body entry. A failed body keeps the same keys with null
// values and an error message.
type PlanetView struct {
	Deg          *float64 `json:"deg"`
	Sign         *string  `json:"sign"`
	DegInSign    *float64 `json:"deg_in_sign"`
	DegInSignStr *string  `json:"deg_in_sign_str"`
	Error        string   `json:"error,omitempty"`
}

// OK reports whether the entry carries a position.
func (p PlanetView) OK() bool { return p.Error == "" && p.Deg != nil }

// Response is returned by Service.Compute and Service.Get.
type Response struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	DurationMs    int64     `json:"durationMs"`
	Cached        bool      `json:"cached"`
	Ephemeris     string    `json:"ephemeris"`
	AyanamsaModel string    `json:"ayanamsaModel"`
	ChartView
}

// Render converts a chart into its serialized form using the given sign labels.
func Render(c Chart, signs astro.SignNames) ChartView {
	planets := make(map[string]PlanetView, len(c.Placements))
	for _, p := range c.Placements {
		planets[string(p.Body)] = renderPlacement(p, signs)
	}
	return ChartView{
		Date:     c.Instant.UTC().Format(isoMillis),
		JD:       c.JulianDay,
		Ayanamsa: round3(c.Ayanamsa),
		Planets:  planets,
	}
}

func renderPlacement(p Placement, signs astro.SignNames) PlanetView {
	if !p.OK() {
		return PlanetView{Error: p.Err.Error()}
	}
	deg := round3(p.Sidereal)
	if deg >= 360 {
		deg -= 360
	}
	inSign := round3(p.Position.DegreeInSign)
	sign := signs.Name(p.Position.Sign)
	formatted := p.Position.Formatted
	return PlanetView{
		Deg:          &deg,
		Sign:         &sign,
		DegInSign:    &inSign,
		DegInSignStr: &formatted,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
