package chart

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yanqian/natal-chart/internal/domain/astro"
	apperrors "github.com/yanqian/natal-chart/pkg/errors"
)

// Request is the birth record accepted from callers. Pointer fields let us
// tell a missing value from a zero one; only TZOffset is optional.
type Request struct {
	Year      *int     `json:"year"`
	Month     *int     `json:"month"`
	Day       *int     `json:"day"`
	Hour      *int     `json:"hour"`
	Minute    *float64 `json:"minute"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	TZOffset  *float64 `json:"tzOffset"`

	// Owner is the authenticated subject, set by the transport layer.
	Owner string `json:"-"`
}

// BirthInput validates the request and converts it into the core record.
func (r Request) BirthInput(minYear, maxYear int) (astro.BirthInput, error) {
	var missing []string
	if r.Year == nil {
		missing = append(missing, "year")
	}
	if r.Month == nil {
		missing = append(missing, "month")
	}
	if r.Day == nil {
		missing = append(missing, "day")
	}
	if r.Hour == nil {
		missing = append(missing, "hour")
	}
	if r.Minute == nil {
		missing = append(missing, "minute")
	}
	if r.Latitude == nil {
		missing = append(missing, "latitude")
	}
	if r.Longitude == nil {
		missing = append(missing, "longitude")
	}
	if len(missing) > 0 {
		return astro.BirthInput{}, apperrors.Wrap(CodeInvalidInput, "missing parameters: "+strings.Join(missing, ", "), nil)
	}

	in := astro.BirthInput{
		Year:      *r.Year,
		Month:     *r.Month,
		Day:       *r.Day,
		Hour:      *r.Hour,
		Minute:    *r.Minute,
		Latitude:  *r.Latitude,
		Longitude: *r.Longitude,
	}
	if r.TZOffset != nil {
		in.UTCOffsetHours = *r.TZOffset
	}
	if in.Year < minYear || in.Year > maxYear {
		return astro.BirthInput{}, apperrors.Wrap(CodeInvalidInput, fmt.Sprintf("year must be between %d and %d", minYear, maxYear), nil)
	}
	if err := in.Validate(); err != nil {
		return astro.BirthInput{}, apperrors.Wrap(CodeInvalidInput, "invalid birth data", err)
	}
	return in, nil
}

// Chart is the immutable result of one computation. Placements follow
// astro.ChartBodies order; callers must not modify them.
type Chart struct {
	Instant    time.Time
	JulianDay  float64
	Ayanamsa   float64
	Ephemeris  string
	Placements []Placement
}

// Placement is either a resolved position or the reason it is missing.
type Placement struct {
	Body     astro.Body
	Tropical float64
	Sidereal float64
	Position astro.ZodiacPosition
	Err      error
}

// OK reports whether the placement carries a position.
func (p Placement) OK() bool { return p.Err == nil }

// Placement looks up a body.
func (c Chart) Placement(body astro.Body) (Placement, bool) {
	for _, p := range c.Placements {
		if p.Body == body {
			return p, true
		}
	}
	return Placement{}, false
}

// Failed lists the bodies that degraded to an error entry.
func (c Chart) Failed() []astro.Body {
	var out []astro.Body
	for _, p := range c.Placements {
		if !p.OK() {
			out = append(out, p.Body)
		}
	}
	return out
}

func resolved(body astro.Body, tropical, ayanamsa float64) Placement {
	sidereal := astro.ToSidereal(tropical, ayanamsa)
	return Placement{
		Body:     body,
		Tropical: astro.NormalizeDegrees(tropical),
		Sidereal: sidereal,
		Position: astro.Classify(sidereal),
	}
}

// fromSidereal keeps the sidereal value as given so derived points such as
// Ketu are not perturbed by a tropical round trip.
func fromSidereal(body astro.Body, sidereal, ayanamsa float64) Placement {
	return Placement{
		Body:     body,
		Tropical: astro.ToTropical(sidereal, ayanamsa),
		Sidereal: sidereal,
		Position: astro.Classify(sidereal),
	}
}

func failed(body astro.Body, code string, err error) Placement {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return Placement{Body: body, Err: err}
	}
	return Placement{Body: body, Err: apperrors.Wrap(code, string(body)+" unavailable", err)}
}
