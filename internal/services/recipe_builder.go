package services

import (
	"context"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/vladimiradmaev/recipebox/internal/domain"
	apperrors "github.com/vladimiradmaev/recipebox/internal/errors"
	"github.com/vladimiradmaev/recipebox/internal/logger"
	"github.com/vladimiradmaev/recipebox/internal/structured"
	"github.com/vladimiradmaev/recipebox/internal/utils"
)

// recipeDraft accumulates handler output for one recipe item
type recipeDraft struct {
	title       string
	description string
	yield       string
	servings    int
	prepTime    int
	cookTime    int
	images      []string
	ingredients []string
	steps       []string
	author      *string
}

type propertyHandler func(d *recipeDraft, values []structured.Value)

// propertyHandlers is keyed by normalised property name. Properties without
// a handler are ignored.
var propertyHandlers = map[string]propertyHandler{
	"name":               parseName,
	"description":        parseDescription,
	"recipeyield":        parseYield,
	"preptime":           parsePrepTime,
	"cooktime":           parseCookTime,
	"image":              parseImages,
	"recipeingredient":   parseIngredientLines,
	"recipeinstructions": parseInstructions,
	"author":             parseAuthor,
}

// normalizeProperty strips a vocabulary prefix such as "http://schema.org/"
// or "schema:" and lowercases the rest.
func normalizeProperty(name string) string {
	if i := strings.LastIndexAny(name, "/#:"); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

// SelectRecipeItem returns the first item typed as a recipe. Failing that, a
// lone item is assumed to be the recipe. Otherwise it returns nil.
func SelectRecipeItem(items []*structured.Item) *structured.Item {
	for _, it := range items {
		if it.HasType("recipe") {
			return it
		}
	}
	if len(items) == 1 {
		return items[0]
	}
	return nil
}

func parseRecipeItem(it *structured.Item) *recipeDraft {
	d := &recipeDraft{}
	for _, name := range it.Names() {
		if handle, ok := propertyHandlers[normalizeProperty(name)]; ok {
			handle(d, it.Values(name))
		}
	}
	return d
}

func firstText(values []structured.Value) string {
	for _, v := range values {
		if !v.IsItem() {
			return strings.TrimSpace(html.UnescapeString(v.Text))
		}
	}
	return ""
}

func parseName(d *recipeDraft, values []structured.Value) {
	d.title = firstText(values)
}

func parseDescription(d *recipeDraft, values []structured.Value) {
	d.description = firstText(values)
}

var digitsRe = regexp.MustCompile(`\d+`)

func parseYield(d *recipeDraft, values []structured.Value) {
	d.yield = firstText(values)
	if m := digitsRe.FindString(d.yield); m != "" {
		d.servings, _ = strconv.Atoi(m)
	}
}

func parsePrepTime(d *recipeDraft, values []structured.Value) {
	d.prepTime = utils.DurationToMinutes(firstText(values))
}

func parseCookTime(d *recipeDraft, values []structured.Value) {
	d.cookTime = utils.DurationToMinutes(firstText(values))
}

func isAbsoluteHTTP(s string) bool {
	return strings.Contains(s, "http://") || strings.Contains(s, "https://")
}

func parseImages(d *recipeDraft, values []structured.Value) {
	for _, v := range values {
		src := v.Text
		if v.IsItem() {
			src = v.Item.FirstText("url")
		}
		src = strings.TrimSpace(src)
		if src != "" && isAbsoluteHTTP(src) {
			d.images = append(d.images, src)
		}
	}
}

func parseIngredientLines(d *recipeDraft, values []structured.Value) {
	for _, v := range values {
		if v.IsItem() {
			continue
		}
		if line := strings.TrimSpace(html.UnescapeString(v.Text)); line != "" {
			d.ingredients = append(d.ingredients, line)
		}
	}
}

func parseInstructions(d *recipeDraft, values []structured.Value) {
	for _, v := range values {
		d.steps = append(d.steps, instructionSteps(v)...)
	}
}

func instructionSteps(v structured.Value) []string {
	if !v.IsItem() {
		if step := strings.TrimSpace(html.UnescapeString(v.Text)); step != "" {
			return []string{step}
		}
		return nil
	}

	switch {
	case v.Item.HasType("howtostep"):
		if step := strings.TrimSpace(html.UnescapeString(v.Item.FirstText("text"))); step != "" {
			return []string{step}
		}
	case v.Item.HasType("howtosection"):
		var steps []string
		for _, el := range v.Item.Values("itemListElement") {
			steps = append(steps, instructionSteps(el)...)
		}
		return steps
	}
	return nil
}

func parseAuthor(d *recipeDraft, values []structured.Value) {
	for _, v := range values {
		var name string
		switch {
		case v.IsItem() && v.Item.HasType("person"):
			name = v.Item.FirstText("name")
		case !v.IsItem():
			name = v.Text
		default:
			continue
		}
		name = strings.TrimSpace(html.UnescapeString(name))
		if name == "" {
			continue
		}
		d.author = &name
	}
}

// finalServings falls back to the whole yield text when it had no digit run
func (d *recipeDraft) finalServings() int {
	if d.servings > 0 {
		return d.servings
	}
	n, err := strconv.Atoi(strings.TrimSpace(d.yield))
	if err != nil {
		return 0
	}
	return n
}

func (d *recipeDraft) applyTo(r *domain.Recipe) {
	r.Title = d.title
	r.Description = d.description
	r.Instructions = strings.Join(d.steps, "\n\n")
	r.Author = d.author
	r.PrepTime = d.prepTime
	r.CookingTime = d.cookTime
	r.Servings = d.finalServings()
	r.Yield = d.yield
	r.Images = append(make([]string, 0, len(d.images)), d.images...)
}

// RecipeBuilder turns extracted items into a persisted recipe
type RecipeBuilder struct {
	recipes   domain.RecipeRepository
	parser    *IngredientParser
	nutrition *NutritionExtractor
}

func NewRecipeBuilder(recipes domain.RecipeRepository, parser *IngredientParser, nutrition *NutritionExtractor) *RecipeBuilder {
	return &RecipeBuilder{
		recipes:   recipes,
		parser:    parser,
		nutrition: nutrition,
	}
}

// BuildFromItems selects the recipe item, maps its properties and upserts the
// recipe keyed by (title, pageURL). An existing recipe has its ingredient set
// replaced. ownerID becomes the recipe's owner.
func (b *RecipeBuilder) BuildFromItems(ctx context.Context, items []*structured.Item, pageURL string, ownerID uint) (*domain.Recipe, error) {
	item := SelectRecipeItem(items)
	if item == nil {
		return nil, apperrors.NewNoStructuredDataError(pageURL)
	}

	draft := parseRecipeItem(item)
	if draft.title == "" {
		return nil, apperrors.NewNoStructuredDataError(pageURL)
	}

	var source *string
	if pageURL != "" {
		source = &pageURL
	}

	recipe, err := b.recipes.FindByTitleAndURLOrNew(ctx, draft.title, source)
	if err != nil {
		return nil, err
	}
	draft.applyTo(recipe)
	recipe.UserID = ownerID

	links, err := b.parseIngredients(ctx, draft.ingredients)
	if err != nil {
		return nil, err
	}

	if fields := b.nutrition.Extract(items); fields != nil {
		fresh := domain.NutritionFromFields(fields)
		if recipe.Nutrition != nil {
			recipe.Nutrition.CopyValuesFrom(fresh)
		} else {
			recipe.Nutrition = fresh
		}
	}

	if err := b.recipes.SaveImported(ctx, recipe, links); err != nil {
		return nil, err
	}

	logger.Info("Recipe imported",
		"recipe_id", recipe.ID,
		"title", recipe.Title,
		"url", pageURL,
		"ingredients", len(links),
		"owner_id", ownerID)
	return recipe, nil
}

// parseIngredients resolves every line. Two lines naming the same ingredient
// collapse into one link; the later line's quantity wins.
func (b *RecipeBuilder) parseIngredients(ctx context.Context, lines []string) ([]domain.RecipeIngredient, error) {
	links := make([]domain.RecipeIngredient, 0, len(lines))
	index := make(map[uint]int)

	for _, line := range lines {
		parsed, err := b.parser.Parse(ctx, line)
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
				logger.Debug("Skipping ingredient line", "line", line, "error", err)
				continue
			}
			return nil, err
		}

		link := domain.RecipeIngredient{
			IngredientID: parsed.Ingredient.ID,
			Ingredient:   *parsed.Ingredient,
			Amount:       parsed.Amount,
			Unit:         parsed.Unit,
		}
		if i, ok := index[link.IngredientID]; ok {
			link.Position = links[i].Position
			links[i] = link
			continue
		}
		link.Position = len(links)
		index[link.IngredientID] = len(links)
		links = append(links, link)
	}
	return links, nil
}
