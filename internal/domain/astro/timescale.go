package astro

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// J2000 is the Julian Day of 2000-01-01T12:00:00Z.
	J2000 = 2451545.0
	// DaysPerCentury is the length of a Julian century.
	DaysPerCentury = 36525.0

	unixEpochJD = 2440587.5
)

var (
	// ErrInvalidInput marks a birth record that is incomplete or out of range.
	ErrInvalidInput = errors.New("invalid input")
	// ErrTimeConversion marks a failure to derive the Julian Day.
	ErrTimeConversion = errors.New("time conversion failed")
)

// BirthInput is a civil wall-clock reading at the birth place plus its
// coordinates. UTCOffsetHours is local minus UTC.
type BirthInput struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	Day            int     `json:"day"`
	Hour           int     `json:"hour"`
	Minute         float64 `json:"minute"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	UTCOffsetHours float64 `json:"tzOffset"`
}

// Moment is a UTC instant together with its Julian Day.
type Moment struct {
	Instant   time.Time
	JulianDay float64
}

// Validate checks calendar fields and coordinate ranges.
func (in BirthInput) Validate() error {
	if !finite(in.Minute, in.Latitude, in.Longitude, in.UTCOffsetHours) {
		return fmt.Errorf("%w: numeric fields must be finite", ErrInvalidInput)
	}
	if in.Month < 1 || in.Month > 12 {
		return fmt.Errorf("%w: month %d out of range 1-12", ErrInvalidInput, in.Month)
	}
	if in.Day < 1 || in.Day > daysIn(in.Year, time.Month(in.Month)) {
		return fmt.Errorf("%w: day %d out of range for %04d-%02d", ErrInvalidInput, in.Day, in.Year, in.Month)
	}
	if in.Hour < 0 || in.Hour > 23 {
		return fmt.Errorf("%w: hour %d out of range 0-23", ErrInvalidInput, in.Hour)
	}
	if in.Minute < 0 || in.Minute >= 60 {
		return fmt.Errorf("%w: minute %g out of range [0,60)", ErrInvalidInput, in.Minute)
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		return fmt.Errorf("%w: latitude %g out of range [-90,90]", ErrInvalidInput, in.Latitude)
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		return fmt.Errorf("%w: longitude %g out of range [-180,180]", ErrInvalidInput, in.Longitude)
	}
	if in.UTCOffsetHours < -14 || in.UTCOffsetHours > 14 {
		return fmt.Errorf("%w: tzOffset %g out of range [-14,14]", ErrInvalidInput, in.UTCOffsetHours)
	}
	return nil
}

// NormalizeTime converts the civil reading into a UTC instant and Julian Day.
// UTC = wall clock - offset; day, month and year roll over as needed.
func NormalizeTime(in BirthInput) (Moment, error) {
	if err := in.Validate(); err != nil {
		return Moment{}, err
	}
	wall := time.Date(in.Year, time.Month(in.Month), in.Day, in.Hour, 0, 0, 0, time.UTC).
		Add(time.Duration(math.Round(in.Minute * float64(time.Minute))))
	instant := wall.Add(-time.Duration(math.Round(in.UTCOffsetHours * float64(time.Hour))))

	jd := JulianDay(instant)
	if !finite(jd) {
		return Moment{}, fmt.Errorf("%w: non-finite julian day for %s", ErrTimeConversion, instant.Format(time.RFC3339))
	}
	return Moment{Instant: instant, JulianDay: jd}, nil
}

// JulianDay returns the continuous day count of t. Go's calendar is the
// proleptic Gregorian one, so the result is valid before 1582 as well.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	seconds := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return seconds/86400 + unixEpochJD
}

// CenturiesSinceJ2000 is the Julian century count used by most series.
func CenturiesSinceJ2000(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
