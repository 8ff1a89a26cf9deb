package chart

// Error codes carried by pkg/errors.AppError.
const (
	CodeInvalidInput         = "invalid_input"
	CodeTimeConversion       = "time_conversion_failed"
	CodeAyanamsaFailed       = "ayanamsa_failed"
	CodeEphemerisUnavailable = "ephemeris_unavailable"
	CodeAscendantUndefined   = "ascendant_undefined"
	CodeChartNotFound        = "chart_not_found"
	CodeChartError           = "chart_error"
)
