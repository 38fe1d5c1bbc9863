package measurement

import (
	"regexp"
	"strconv"
	"strings"
)

// vulgarFractions maps unicode fraction glyphs to their decimal spelling
var vulgarFractions = map[rune]string{
	'½': "0.5",
	'⅓': "0.333",
	'⅔': "0.667",
	'¼': "0.25",
	'¾': "0.75",
	'⅕': "0.2",
	'⅖': "0.4",
	'⅗': "0.6",
	'⅘': "0.8",
	'⅙': "0.167",
	'⅚': "0.833",
	'⅐': "0.143",
	'⅛': "0.125",
	'⅜': "0.375",
	'⅝': "0.625",
	'⅞': "0.875",
}

// mixedFractionRe matches a whole number glued to a fraction glyph, e.g. "1½" or "1 ½"
var mixedFractionRe = regexp.MustCompile(`(\d+)\s?([½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅐⅛⅜⅝⅞])`)

// ReplaceVulgarFractions substitutes every fraction glyph with its decimal string.
// A glyph directly following a whole number is added to it ("1½" -> "1.5").
func ReplaceVulgarFractions(s string) string {
	s = mixedFractionRe.ReplaceAllStringFunc(s, func(m string) string {
		parts := mixedFractionRe.FindStringSubmatch(m)
		whole, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return m
		}
		frac, _ := strconv.ParseFloat(vulgarFractions[[]rune(parts[2])[0]], 64)
		return strconv.FormatFloat(whole+frac, 'f', -1, 64)
	})

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if dec, ok := vulgarFractions[r]; ok {
			b.WriteString(dec)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type unitPattern struct {
	re   *regexp.Regexp
	unit Unit
}

func pattern(expr string, unit Unit) unitPattern {
	return unitPattern{
		re:   regexp.MustCompile(`(?i)^(?:` + expr + `)\.?\s+`),
		unit: unit,
	}
}

// unitPatterns is evaluated in order; the first match wins. Every unit token
// may end with an abbreviation dot.
var unitPatterns = []unitPattern{
	pattern(`tablespoons?|tbsps?|tbs|tbl`, Tablespoon),
	pattern(`teaspoons?|tsps?`, Teaspoon),
	pattern(`cups?`, Cup),
	pattern(`fluid\s+ounces?|fl\.?\s?oz`, FluidOunce),
	pattern(`kilograms?|kilos?|kgs?`, Kilogram),
	pattern(`milligrams?|mg`, Milligram),
	pattern(`grams?|gr|g`, Gram),
	pattern(`pounds?|lbs?`, Pound),
	pattern(`ounces?|oz`, Ounce),
	pattern(`milliliters?|millilitres?|ml`, Milliliter),
	pattern(`deciliters?|decilitres?|dl`, Deciliter),
	pattern(`liters?|litres?|l`, Liter),
	pattern(`pinch(?:es)?`, Pinch),
	pattern(`dash(?:es)?`, Dash),
	pattern(`cloves?`, Clove),
	pattern(`slices?`, Slice),
	pattern(`cans?`, Can),
	pattern(`pieces?|pcs?`, Piece),
}

// MatchUnit tests the ordered unit patterns against the start of s. On a match it
// returns the unit and the text after the unit token.
func MatchUnit(s string) (Unit, string, bool) {
	for _, p := range unitPatterns {
		if loc := p.re.FindStringIndex(s); loc != nil {
			return p.unit, s[loc[1]:], true
		}
	}
	return None, s, false
}
