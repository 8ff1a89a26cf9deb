package astro

// Body identifies a chart point.
type Body string

const (
	Sun       Body = "sun"
	Moon      Body = "moon"
	Mercury   Body = "mercury"
	Venus     Body = "venus"
	Mars      Body = "mars"
	Jupiter   Body = "jupiter"
	Saturn    Body = "saturn"
	Rahu      Body = "rahu"
	Ketu      Body = "ketu"
	Ascendant Body = "asc"
)

var (
	planets    = [...]Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn}
	chartOrder = [...]Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Rahu, Ketu, Ascendant}
)

// Planets lists the bodies resolved through an Ephemeris.
func Planets() []Body {
	out := planets
	return out[:]
}

// ChartBodies lists every chart point in output order.
func ChartBodies() []Body {
	out := chartOrder
	return out[:]
}

// IsPlanet reports whether b is resolved through an Ephemeris.
func (b Body) IsPlanet() bool {
	for _, p := range planets {
		if p == b {
			return true
		}
	}
	return false
}

func (b Body) String() string { return string(b) }
