package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yanqian/natal-chart/internal/domain/astro"
	"github.com/yanqian/natal-chart/internal/domain/chart"
	"github.com/yanqian/natal-chart/internal/infra/chartrepo"
	"github.com/yanqian/natal-chart/internal/infra/ephemeris"
	"github.com/yanqian/natal-chart/pkg/logger"
)

func newComputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute a natal chart and print it as JSON",
		Long: `Computes a sidereal natal chart for a civil birth time and place.

The local wall-clock time is converted to UTC with --tz (hours east of
Greenwich, fractional allowed). Output matches the body of POST /api/natal.`,
		Example: "  chartctl compute --year 1990 --month 5 --day 15 --hour 10 --minute 30 --lat 28.6139 --lon 77.209 --tz 5.5",
		RunE:    runCompute,
	}
	flags := cmd.Flags()
	flags.Int("year", 0, "birth year")
	flags.Int("month", 0, "birth month (1-12)")
	flags.Int("day", 0, "birth day of month")
	flags.Int("hour", 0, "birth hour, local time (0-23)")
	flags.Float64("minute", 0, "birth minute, local time; fractions allowed")
	flags.Float64("lat", 0, "latitude in degrees, north positive")
	flags.Float64("lon", 0, "longitude in degrees, east positive")
	flags.Float64("tz", 0, "UTC offset in hours")
	flags.String("ephemeris", "analytic", "ephemeris backend: analytic or meeus")
	flags.String("ayanamsa", astro.AyanamsaLahiri, "ayanamsa model: lahiri or iau2006")
	flags.String("locale", "en", "sign name locale: en, ru or sa")
	flags.String("vsop87-dir", "", "VSOP87 data directory for the meeus backend")
	for _, name := range []string{"year", "month", "day", "hour", "minute", "lat", "lon"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runCompute(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	year, _ := flags.GetInt("year")
	month, _ := flags.GetInt("month")
	day, _ := flags.GetInt("day")
	hour, _ := flags.GetInt("hour")
	minute, _ := flags.GetFloat64("minute")
	lat, _ := flags.GetFloat64("lat")
	lon, _ := flags.GetFloat64("lon")
	tz, _ := flags.GetFloat64("tz")
	backend, _ := flags.GetString("ephemeris")
	model, _ := flags.GetString("ayanamsa")
	locale, _ := flags.GetString("locale")
	vsopDir, _ := flags.GetString("vsop87-dir")

	log := logger.NewCLI(cmd.ErrOrStderr())
	eph, err := ephemeris.New(backend, ephemeris.Options{VSOP87Dir: vsopDir}, log)
	if err != nil {
		return fmt.Errorf("compute: %w", err)
	}
	ayanamsa, err := astro.NewAyanamsa(model)
	if err != nil {
		return fmt.Errorf("compute: %w", err)
	}

	cfg := chart.Config{Locale: locale}
	svc, err := chart.NewService(cfg, chart.NewAssembler(cfg, eph, ayanamsa), nil, chartrepo.NewMemoryRepository(), nil, log)
	if err != nil {
		return fmt.Errorf("compute: %w", err)
	}

	resp, err := svc.Compute(cmd.Context(), chart.Request{
		Year:      &year,
		Month:     &month,
		Day:       &day,
		Hour:      &hour,
		Minute:    &minute,
		Latitude:  &lat,
		Longitude: &lon,
		TZOffset:  &tz,
	})
	if err != nil {
		return fmt.Errorf("compute: %w", err)
	}
	return writeJSON(cmd, cmd.OutOrStdout(), resp.ChartView)
}
