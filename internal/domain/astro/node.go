package astro

// MeanNode returns the tropical longitude of the mean ascending lunar node.
func MeanNode(jd float64) float64 {
	t := CenturiesSinceJ2000(jd)
	omega := 125.04452 - 1934.136261*t + 0.0020708*t*t + t*t*t/450000
	return NormalizeDegrees(omega)
}

// SiderealNodes returns Rahu and Ketu as sidereal longitudes. Ketu is derived
// from the sidereal Rahu value so the pair is always an exact antipode.
func SiderealNodes(jd, ayanamsa float64) (rahu, ketu float64) {
	rahu = ToSidereal(MeanNode(jd), ayanamsa)
	ketu = NormalizeDegrees(rahu + 180)
	return rahu, ketu
}
