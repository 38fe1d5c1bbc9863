package menus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vladimiradmaev/recipebox/internal/domain"
	"github.com/vladimiradmaev/recipebox/internal/measurement"
)

func sampleRecipe() *domain.Recipe {
	url := "https://example.com/pancakes"
	author := "Ann & Bob"
	calories := "240 cal"
	protein := "10 g"

	r := &domain.Recipe{
		Title:        "Pancakes <3",
		Description:  "Fluffy.",
		Instructions: "Mix.\n\nFry.",
		URL:          &url,
		Author:       &author,
		PrepTime:     10,
		CookingTime:  75,
		Servings:     2,
		Ingredients: []domain.RecipeIngredient{
			{Amount: 1, Unit: measurement.Cup, Ingredient: domain.Ingredient{Name: "flour"}},
			{Amount: 1, Unit: measurement.Teaspoon, Ingredient: domain.Ingredient{Name: "salt"}},
			{Amount: 3, Unit: measurement.Piece, Ingredient: domain.Ingredient{Name: "eggs"}},
			{Amount: 0, Unit: measurement.None, Ingredient: domain.Ingredient{Name: "butter for the pan"}},
		},
		Nutrition: &domain.NutritionInformation{Calories: &calories, ProteinContent: &protein},
	}
	r.ID = 12
	return r
}

func TestFormatRecipe(t *testing.T) {
	text := FormatRecipe(sampleRecipe(), 0)

	assert.True(t, strings.HasPrefix(text, "<b>Pancakes &lt;3</b>\n<i>by Ann &amp; Bob</i>\n"))
	assert.Contains(t, text, "🍽 2 servings · ⏱ prep 10 min · 🔥 cook 1 h 15 min")
	assert.Contains(t, text, "• 1 cup flour\n")
	assert.Contains(t, text, "• 3 pc eggs\n")
	assert.Contains(t, text, "• butter for the pan\n")
	assert.Contains(t, text, "<b>Instructions</b>\nMix.\n\nFry.\n")
	assert.Contains(t, text, "Calories: 240 cal\nProtein: 10 g\n")
	assert.Contains(t, text, "🔗 https://example.com/pancakes")
	assert.True(t, strings.HasSuffix(text, "#12"))
}

func TestFormatRecipeScaled(t *testing.T) {
	text := FormatRecipe(sampleRecipe(), 3)

	assert.Contains(t, text, "3 servings (scaled from 2)")
	assert.Contains(t, text, "• 1.5 cup flour\n")
	assert.Contains(t, text, "• 1.5 tsp salt\n")
	// count units round to whole numbers
	assert.Contains(t, text, "• 5 pc eggs\n")
}

func TestScaleFactor(t *testing.T) {
	r := sampleRecipe()
	assert.Equal(t, 2.0, ScaleFactor(r, 4))
	assert.Equal(t, 1.0, ScaleFactor(r, 0))

	r.Servings = 0
	assert.Equal(t, 1.0, ScaleFactor(r, 4))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "45 min", formatMinutes(45))
	assert.Equal(t, "2 h", formatMinutes(120))
	assert.Equal(t, "1 h 30 min", formatMinutes(90))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
}

func TestFormatRecipeUnscaledKeepsStoredAmounts(t *testing.T) {
	r := sampleRecipe()
	r.Ingredients = []domain.RecipeIngredient{
		{Amount: 1.333, Unit: measurement.Cup, Ingredient: domain.Ingredient{Name: "flour"}},
		{Amount: 1.0 / 3.0, Unit: measurement.Teaspoon, Ingredient: domain.Ingredient{Name: "salt"}},
	}

	for _, servings := range []int{0, 2} {
		text := FormatRecipe(r, servings)
		assert.Contains(t, text, "• 1.33 cup flour\n")
		assert.Contains(t, text, "• 0.33 tsp salt\n")
	}
}

func TestFormatRecipeListsIngredientsByPosition(t *testing.T) {
	r := sampleRecipe()
	r.Ingredients = []domain.RecipeIngredient{
		{Position: 2, Amount: 1, Unit: measurement.Pinch, Ingredient: domain.Ingredient{Name: "salt"}},
		{Position: 0, Amount: 1, Unit: measurement.Cup, Ingredient: domain.Ingredient{Name: "oats"}},
		{Position: 1, Amount: 2, Unit: measurement.Cup, Ingredient: domain.Ingredient{Name: "milk"}},
	}

	text := FormatRecipe(r, 0)
	assert.Contains(t, text, "• 1 cup oats\n• 2 cup milk\n• 1 pinch salt\n")
}
