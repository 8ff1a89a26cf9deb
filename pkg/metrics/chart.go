package metrics

import "log/slog"

// ChartStats summarizes one chart request for logs and responses.
type ChartStats struct {
	Bodies     int   `json:"bodies"`
	Failed     int   `json:"failed,omitempty"`
	CacheHit   bool  `json:"cacheHit"`
	DurationMs int64 `json:"durationMs"`
}

// IsDegraded reports whether at least one body fell back to an error entry.
func (s ChartStats) IsDegraded() bool {
	return s.Failed > 0
}

// LogValue groups the stats under one slog attribute.
func (s ChartStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bodies", s.Bodies),
		slog.Int("failed", s.Failed),
		slog.Bool("cacheHit", s.CacheHit),
		slog.Int64("durationMs", s.DurationMs),
	)
}
