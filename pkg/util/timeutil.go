package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// SinceMillis reports the wall time elapsed since start in whole milliseconds.
func SinceMillis(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
