// Package ephemeris selects an astro.Ephemeris backend by name.
package ephemeris

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/yanqian/natal-chart/internal/domain/astro"
	"github.com/yanqian/natal-chart/internal/infra/ephemeris/analytic"
	"github.com/yanqian/natal-chart/internal/infra/ephemeris/meeus"
)

// Options carries backend specific settings.
type Options struct {
	VSOP87Dir string
}

// New builds the named backend. An empty name selects the analytic one.
func New(name string, opts Options, logger *slog.Logger) (astro.Ephemeris, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", analytic.Name:
		return analytic.NewProvider(), nil
	case meeus.Name:
		return meeus.NewProvider(opts.VSOP87Dir, logger), nil
	default:
		return nil, fmt.Errorf("unknown ephemeris backend %q", name)
	}
}
