package analytic

import "math"

// orbit holds mean Keplerian elements referred to the J2000 ecliptic and
// equinox, with their rates per Julian century. b, c, s and f correct the
// mean anomaly of Jupiter and Saturn in the long-range set.
type orbit struct {
	a, e, i, l, peri, node                   float64
	aDot, eDot, iDot, lDot, periDot, nodeDot float64
	b, c, s, f                               float64
}

// Epochs covered by recentOrbits, as Julian days (1800-01-01 and 2050-12-31).
const (
	recentFrom = 2378496.5
	recentTo   = 2470171.5
)

// recentOrbits is the JPL approximate-positions fit for 1800-2050.
var recentOrbits = map[string]orbit{
	"mercury": {a: 0.38709927, e: 0.20563593, i: 7.00497902, l: 252.25032350, peri: 77.45779628, node: 48.33076593,
		aDot: 0.00000037, eDot: 0.00001906, iDot: -0.00594749, lDot: 149472.67411175, periDot: 0.16047689, nodeDot: -0.12534081},
	"venus": {a: 0.72333566, e: 0.00677672, i: 3.39467605, l: 181.97909950, peri: 131.60246718, node: 76.67984255,
		aDot: 0.00000390, eDot: -0.00004107, iDot: -0.00078890, lDot: 58517.81538729, periDot: 0.00268329, nodeDot: -0.27769418},
	"earth": {a: 1.00000261, e: 0.01671123, i: -0.00001531, l: 100.46457166, peri: 102.93768193, node: 0.0,
		aDot: 0.00000562, eDot: -0.00004392, iDot: -0.01294668, lDot: 35999.37244981, periDot: 0.32327364, nodeDot: 0.0},
	"mars": {a: 1.52371034, e: 0.09339410, i: 1.84969142, l: -4.55343205, peri: -23.94362959, node: 49.55953891,
		aDot: 0.00001847, eDot: 0.00007882, iDot: -0.00813131, lDot: 19140.30268499, periDot: 0.44441088, nodeDot: -0.29257343},
	"jupiter": {a: 5.20288700, e: 0.04838624, i: 1.30439695, l: 34.39644051, peri: 14.72847983, node: 100.47390909,
		aDot: -0.00011607, eDot: -0.00013253, iDot: -0.00183714, lDot: 3034.74612775, periDot: 0.21252668, nodeDot: 0.20469106},
	"saturn": {a: 9.53667594, e: 0.05386179, i: 2.48599187, l: 49.95424423, peri: 92.59887831, node: 113.66242448,
		aDot: -0.00125060, eDot: -0.00050991, iDot: 0.00193609, lDot: 1222.49362201, periDot: -0.41897216, nodeDot: -0.28867794},
}

// longRangeOrbits is the JPL fit for 3000 BC to 3000 AD, used outside
// recentFrom..recentTo.
var longRangeOrbits = map[string]orbit{
	"mercury": {a: 0.38709843, e: 0.20563661, i: 7.00559432, l: 252.25166724, peri: 77.45771895, node: 48.33961819,
		aDot: 0.00000000, eDot: 0.00002123, iDot: -0.00590158, lDot: 149472.67486623, periDot: 0.15940013, nodeDot: -0.12214182},
	"venus": {a: 0.72332102, e: 0.00676399, i: 3.39777545, l: 181.97970850, peri: 131.76755713, node: 76.67261496,
		aDot: -0.00000026, eDot: -0.00005107, iDot: 0.00043494, lDot: 58517.81560260, periDot: 0.05679648, nodeDot: -0.27274174},
	"earth": {a: 1.00000018, e: 0.01673163, i: -0.00054346, l: 100.46691572, peri: 102.93005885, node: -5.11260389,
		aDot: -0.00000003, eDot: -0.00003661, iDot: -0.01337178, lDot: 35999.37306329, periDot: 0.31795260, nodeDot: -0.24123856},
	"mars": {a: 1.52371243, e: 0.09336511, i: 1.85181869, l: -4.56813164, peri: -23.91744784, node: 49.71320984,
		aDot: 0.00000097, eDot: 0.00009149, iDot: -0.00724757, lDot: 19140.29934243, periDot: 0.45223625, nodeDot: -0.26852431},
	"jupiter": {a: 5.20248019, e: 0.04853590, i: 1.29861416, l: 34.33479152, peri: 14.27495244, node: 100.29282654,
		aDot: -0.00002864, eDot: 0.00018026, iDot: -0.00322699, lDot: 3034.90371757, periDot: 0.18199196, nodeDot: 0.13024619,
		b: -0.00012452, c: 0.06064060, s: -0.35635438, f: 38.35125000},
	"saturn": {a: 9.54149883, e: 0.05550825, i: 2.49424102, l: 50.07571329, peri: 92.86136063, node: 113.63998702,
		aDot: -0.00003065, eDot: -0.00032044, iDot: 0.00451969, lDot: 1222.11494724, periDot: 0.54179478, nodeDot: -0.25015002,
		b: 0.00025899, c: -0.13434469, s: 0.87320147, f: 38.35125000},
}

// orbitsAt picks the element set fitted to the epoch.
func orbitsAt(jd float64) map[string]orbit {
	if jd >= recentFrom && jd <= recentTo {
		return recentOrbits
	}
	return longRangeOrbits
}

type vec3 struct{ x, y, z float64 }

func (v vec3) sub(o vec3) vec3 { return vec3{v.x - o.x, v.y - o.y, v.z - o.z} }

// longitude is the ecliptic longitude of v in degrees, unnormalized.
func (v vec3) longitude() float64 { return math.Atan2(v.y, v.x) * radToDeg }

// heliocentric returns the J2000 ecliptic position in AU, t in centuries since J2000.
func (o orbit) heliocentric(t float64) vec3 {
	a := o.a + o.aDot*t
	e := o.e + o.eDot*t
	inc := (o.i + o.iDot*t) * degToRad
	l := o.l + o.lDot*t
	peri := o.peri + o.periDot*t
	node := o.node + o.nodeDot*t

	argPeri := (peri - node) * degToRad
	m := l - peri + o.b*t*t
	if o.f != 0 {
		m += o.c*math.Cos(o.f*t*degToRad) + o.s*math.Sin(o.f*t*degToRad)
	}
	meanAnomaly := math.Mod(m, 360) * degToRad
	ecc := solveKepler(meanAnomaly, e)

	xp := a * (math.Cos(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ecc)

	cw, sw := math.Cos(argPeri), math.Sin(argPeri)
	cn, sn := math.Cos(node*degToRad), math.Sin(node*degToRad)
	ci, si := math.Cos(inc), math.Sin(inc)

	return vec3{
		x: (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp,
		y: (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp,
		z: (sw*si)*xp + (cw*si)*yp,
	}
}

// solveKepler returns the eccentric anomaly for mean anomaly m (radians).
func solveKepler(m, e float64) float64 {
	ecc := m + e*math.Sin(m)
	for iter := 0; iter < 30; iter++ {
		delta := (m - (ecc - e*math.Sin(ecc))) / (1 - e*math.Cos(ecc))
		ecc += delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}
	return ecc
}
