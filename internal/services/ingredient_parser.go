package services

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/gosimple/slug"

	"github.com/vladimiradmaev/recipebox/internal/domain"
	apperrors "github.com/vladimiradmaev/recipebox/internal/errors"
	"github.com/vladimiradmaev/recipebox/internal/measurement"
)

// ParsedIngredient is the result of parsing one ingredient line
type ParsedIngredient struct {
	Ingredient *domain.Ingredient
	Name       string
	Amount     float64
	Unit       measurement.Unit
}

// Measurement returns amount and unit as a value object
func (p ParsedIngredient) Measurement() measurement.Measurement {
	return measurement.New(p.Amount, p.Unit)
}

var leadingAmountRe = regexp.MustCompile(`^([\d./]+)\s*(.*)$`)

// fractionRe matches the second half of a mixed number such as "2 1/2"
var fractionRe = regexp.MustCompile(`^(\d+)/(\d+)\s+(.*)$`)

var leadingOfRe = regexp.MustCompile(`(?i)^of\s+`)

// IngredientParser turns free-text ingredient lines into amounts, units and
// ingredient records.
type IngredientParser struct {
	ingredients domain.IngredientRepository
}

func NewIngredientParser(ingredients domain.IngredientRepository) *IngredientParser {
	return &IngredientParser{ingredients: ingredients}
}

// Parse parses line and finds or creates the ingredient by the slug of its
// cleaned name. A line whose name has no sluggable characters is rejected with
// a validation error.
func (p *IngredientParser) Parse(ctx context.Context, line string) (*ParsedIngredient, error) {
	name, amount, unit := ParseIngredientLine(line)

	s := slug.Make(name)
	if s == "" {
		return nil, apperrors.NewValidationError(fmt.Sprintf("ingredient line %q has no name", line))
	}

	ingredient, err := p.ingredients.FindBySlugOrCreate(ctx, s, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ingredient %q: %w", s, err)
	}

	return &ParsedIngredient{
		Ingredient: ingredient,
		Name:       name,
		Amount:     amount,
		Unit:       unit,
	}, nil
}

// ParseIngredientLine splits a line into name, amount and unit without
// touching storage. Lines without a leading number keep the whole text as the
// name and have no unit. Lines with a number but no recognised unit are
// counted in pieces.
func ParseIngredientLine(line string) (string, float64, measurement.Unit) {
	s := strings.Join(strings.Fields(html.UnescapeString(line)), " ")
	s = measurement.ReplaceVulgarFractions(s)

	m := leadingAmountRe.FindStringSubmatch(s)
	if m == nil {
		return cleanIngredientName(s), 0, measurement.None
	}

	amount := parseAmount(m[1])
	rest := m[2]
	if f := fractionRe.FindStringSubmatch(rest); f != nil && !strings.Contains(m[1], "/") {
		amount += parseAmount(f[1] + "/" + f[2])
		rest = f[3]
	}

	unit, rest, ok := measurement.MatchUnit(rest)
	if !ok {
		unit = measurement.Piece
	}
	return cleanIngredientName(rest), amount, unit
}

func parseAmount(token string) float64 {
	if num, den, ok := strings.Cut(token, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0
		}
		return n / d
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0
	}
	return v
}

func cleanIngredientName(s string) string {
	s = strings.TrimSpace(s)
	s = leadingOfRe.ReplaceAllString(s, "")
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
