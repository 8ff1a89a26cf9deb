package chart

import "time"

// Config holds runtime knobs for chart computation.
type Config struct {
	Locale      string
	BodyTimeout time.Duration
	RetryOnce   bool
	MinYear     int
	MaxYear     int
	CacheTTL    time.Duration
}

const (
	defaultBodyTimeout = 2 * time.Second
	defaultMinYear     = 1600
	defaultMaxYear     = 2400
)

func (c Config) withDefaults() Config {
	if c.BodyTimeout <= 0 {
		c.BodyTimeout = defaultBodyTimeout
	}
	if c.MinYear == 0 && c.MaxYear == 0 {
		c.MinYear, c.MaxYear = defaultMinYear, defaultMaxYear
	}
	return c
}
