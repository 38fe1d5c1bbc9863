package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vladimiradmaev/recipebox/internal/structured"
)

func nutritionItem(props map[string]string) *structured.Item {
	it := structured.NewItem("http://schema.org/NutritionInformation")
	for k, v := range props {
		it.Add(k, structured.TextValue(v))
	}
	return it
}

func TestNutritionExtractorNestedObject(t *testing.T) {
	recipe := structured.NewItem("Recipe")
	recipe.Add("name", structured.TextValue("Pancakes"))
	recipe.Add("nutrition", structured.ItemValue(nutritionItem(map[string]string{
		"calories":            "240",
		"proteinContent":      "10",
		"carbohydrateContent": "12 grams carbohydrates",
		"sodiumContent":       "300 mg",
		"fatContent":          "5&nbsp;g",
		"servingSize":         "1 slice",
		"cholesterolContent":  "15 milligrams cholesterol",
		"sugarContent":        "about 4",
		"unknownContent":      "1",
	})))

	fields := NewNutritionExtractor().Extract([]*structured.Item{recipe})

	assert.Equal(t, map[string]string{
		"calories":             "240 cal",
		"protein_content":      "10 g",
		"carbohydrate_content": "12 g",
		"sodium_content":       "300 mg",
		"fat_content":          "5 g",
		"serving_size":         "1 slice",
		"cholesterol_content":  "15 mg",
		"sugar_content":        "about 4",
	}, fields)
}

func TestNutritionExtractorTopLevelItem(t *testing.T) {
	items := []*structured.Item{
		structured.NewItem("Recipe"),
		nutritionItem(map[string]string{"calories": "320 kcal", "schema:fiberContent": "3.5g"}),
	}

	fields := NewNutritionExtractor().Extract(items)

	assert.Equal(t, "320 cal", fields["calories"])
	assert.Equal(t, "3.5 g", fields["fiber_content"])
}

func TestNutritionExtractorAbsent(t *testing.T) {
	recipe := structured.NewItem("Recipe")
	// nutrition-like names on a non-nutrition item do not count
	recipe.Add("calories", structured.TextValue("100"))
	recipe.Add("nutrition", structured.TextValue("lots"))

	assert.Nil(t, NewNutritionExtractor().Extract([]*structured.Item{recipe}))
	assert.Nil(t, NewNutritionExtractor().Extract(nil))
}
