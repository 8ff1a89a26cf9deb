// Package astro holds the numeric core of the chart pipeline: civil time to
// Julian Day, ayanamsa models, the mean lunar node, the ascendant, and the
// mapping of sidereal longitudes onto zodiac signs.
//
// Every function here is pure. Model constants are package-level and never
// mutated, so the package is safe to share between concurrent chart
// computations.
package astro
