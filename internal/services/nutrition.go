package services

import (
	"html"
	"regexp"
	"strings"

	"github.com/vladimiradmaev/recipebox/internal/structured"
)

type nutritionField struct {
	key    string
	suffix string
	strip  *regexp.Regexp
}

// trailingUnitRe builds a pattern for redundant unit text at the end of a
// value, e.g. "12 grams carbohydrates" -> "12".
func trailingUnitRe(units, words string) *regexp.Regexp {
	expr := `(?i)\s*(?:` + units + `)?\.?\s*(?:of\s+)?`
	if words != "" {
		expr += `(?:` + words + `)?`
	}
	return regexp.MustCompile(expr + `\s*$`)
}

const (
	gramUnits      = `grams?|gr|g`
	milligramUnits = `milligrams?|mg`
)

// nutritionFields is keyed by normalised schema.org property name
var nutritionFields = map[string]nutritionField{
	"calories":              {"calories", "cal", trailingUnitRe(`kcals?|kilocalories|calories|calorie|cals?`, "")},
	"carbohydratecontent":   {"carbohydrate_content", "g", trailingUnitRe(gramUnits, `carbohydrates?|carbs?`)},
	"cholesterolcontent":    {"cholesterol_content", "mg", trailingUnitRe(milligramUnits, `cholesterol`)},
	"fatcontent":            {"fat_content", "g", trailingUnitRe(gramUnits, `fat`)},
	"fibercontent":          {"fiber_content", "g", trailingUnitRe(gramUnits, `fib(?:er|re)`)},
	"proteincontent":        {"protein_content", "g", trailingUnitRe(gramUnits, `proteins?`)},
	"saturatedfatcontent":   {"saturated_fat_content", "g", trailingUnitRe(gramUnits, `saturated\s+fat`)},
	"servingsize":           {"serving_size", "", nil},
	"sodiumcontent":         {"sodium_content", "mg", trailingUnitRe(milligramUnits, `sodium`)},
	"sugarcontent":          {"sugar_content", "g", trailingUnitRe(gramUnits, `sugars?`)},
	"transfatcontent":       {"trans_fat_content", "g", trailingUnitRe(gramUnits, `trans\s+fat`)},
	"unsaturatedfatcontent": {"unsaturated_fat_content", "g", trailingUnitRe(gramUnits, `unsaturated\s+fat`)},
}

var numericRe = regexp.MustCompile(`^\d+(?:[.,]\d+)?$`)

// NutritionExtractor collects nutrition facts from extracted items
type NutritionExtractor struct{}

func NewNutritionExtractor() *NutritionExtractor {
	return &NutritionExtractor{}
}

// Extract scans items, and nutrition objects nested under them, for known
// nutrition properties. Values are keyed by snake_case field name. It returns
// nil when no nutrition object carrying a known property was found.
func (e *NutritionExtractor) Extract(items []*structured.Item) map[string]string {
	fields := make(map[string]string)
	for _, it := range items {
		e.scan(it, false, fields)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (e *NutritionExtractor) scan(it *structured.Item, nested bool, fields map[string]string) {
	if nested || it.HasType("nutrition") {
		for _, name := range it.Names() {
			field, ok := nutritionFields[normalizeProperty(name)]
			if !ok {
				continue
			}
			raw := it.FirstText(name)
			if v := cleanNutritionValue(field, raw); v != "" {
				fields[field.key] = v
			}
		}
	}

	for _, name := range it.Names() {
		if !strings.Contains(normalizeProperty(name), "nutrition") {
			continue
		}
		for _, v := range it.Values(name) {
			if v.IsItem() {
				e.scan(v.Item, true, fields)
			}
		}
	}
}

func cleanNutritionValue(field nutritionField, raw string) string {
	v := strings.Join(strings.Fields(html.UnescapeString(raw)), " ")
	if field.strip == nil {
		return v
	}
	v = strings.TrimSpace(field.strip.ReplaceAllString(v, ""))
	if numericRe.MatchString(v) {
		v += " " + field.suffix
	}
	return v
}
