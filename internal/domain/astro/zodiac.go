package astro

import (
	"fmt"
	"math"
	"strings"
)

// ZodiacPosition places a sidereal longitude inside a sign.
type ZodiacPosition struct {
	Sign         int     // 0 = Aries ... 11 = Pisces
	DegreeInSign float64 // [0, 30)
	Formatted    string  // D°MM'
}

// Classify maps a longitude onto its sign. The arc-minute rounding used by
// Formatted carries into the next degree and, from 29°59.5' on, into the
// next sign; Sign and DegreeInSign follow the carry so all three agree.
func Classify(longitude float64) ZodiacPosition {
	lon := NormalizeDegrees(longitude)
	sign := int(math.Floor(lon/30)) % 12
	inSign := lon - float64(sign)*30
	if inSign < 0 {
		inSign = 0
	}

	whole := math.Floor(inSign)
	deg := int(whole)
	minutes := int(math.Round((inSign - whole) * 60))
	if minutes == 60 {
		minutes = 0
		deg++
	}
	if deg == 30 {
		deg = 0
		sign = (sign + 1) % 12
		inSign = 0
	}

	return ZodiacPosition{
		Sign:         sign,
		DegreeInSign: inSign,
		Formatted:    fmt.Sprintf("%d°%02d'", deg, minutes),
	}
}

// SignNames is an ordered list of sign labels, Aries first.
type SignNames [12]string

// Name returns the label of a sign index.
func (s SignNames) Name(sign int) string {
	return s[((sign%12)+12)%12]
}

var signLocales = map[string]SignNames{
	"en": {"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo", "Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces"},
	"ru": {"Овен", "Телец", "Близнецы", "Рак", "Лев", "Дева", "Весы", "Скорпион", "Стрелец", "Козерог", "Водолей", "Рыбы"},
	"sa": {"Mesha", "Vrishabha", "Mithuna", "Karka", "Simha", "Kanya", "Tula", "Vrischika", "Dhanu", "Makara", "Kumbha", "Meena"},
}

// SignNamesFor returns the labels for a locale ("en", "ru", "sa").
func SignNamesFor(locale string) (SignNames, error) {
	key := strings.ToLower(strings.TrimSpace(locale))
	if key == "" {
		key = "en"
	}
	names, ok := signLocales[key]
	if !ok {
		return SignNames{}, fmt.Errorf("unknown sign locale %q", locale)
	}
	return names, nil
}
