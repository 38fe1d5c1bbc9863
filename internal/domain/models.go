package domain

import (
	"sort"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vladimiradmaev/recipebox/internal/measurement"
)

// User represents a telegram user in the system
type User struct {
	gorm.Model
	TelegramID int64 `gorm:"uniqueIndex"`
	Username   string
	FirstName  string
	LastName   string
}

// Recipe is an imported or hand-written recipe. Imports are identified by
// the (Title, URL) pair.
type Recipe struct {
	gorm.Model
	UserID       uint `gorm:"index"`
	User         User
	Title        string `gorm:"not null"`
	Description  string
	Instructions string
	URL          *string
	Author       *string
	PrepTime     int // Time in minutes
	CookingTime  int // Time in minutes
	Servings     int
	Yield        string
	Images       datatypes.JSONSlice[string]
	Ingredients  []RecipeIngredient    `gorm:"constraint:OnDelete:CASCADE"`
	Nutrition    *NutritionInformation `gorm:"constraint:OnDelete:CASCADE"`
}

// IsNew reports whether the recipe has not been persisted yet
func (r *Recipe) IsNew() bool {
	return r.ID == 0
}

// OrderedIngredients returns the ingredient links sorted by Position
func (r *Recipe) OrderedIngredients() []RecipeIngredient {
	out := make([]RecipeIngredient, len(r.Ingredients))
	copy(out, r.Ingredients)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// SourceURL returns the page the recipe was imported from, or ""
func (r *Recipe) SourceURL() string {
	if r.URL == nil {
		return ""
	}
	return *r.URL
}

// Ingredient is a deduplicated ingredient name
type Ingredient struct {
	gorm.Model
	Name     string `gorm:"not null"`
	Slug     string `gorm:"uniqueIndex;not null"`
	IsCommon bool   `gorm:"default:false"`
}

// RecipeIngredient links a recipe to an ingredient with a quantity. Position
// keeps the order of the source page.
type RecipeIngredient struct {
	RecipeID     uint `gorm:"primaryKey"`
	IngredientID uint `gorm:"primaryKey"`
	Ingredient   Ingredient
	Position     int `gorm:"not null;default:0"`
	Amount       float64
	Unit         measurement.Unit `gorm:"type:varchar(16)"`
}

// Measurement returns the quantity as a value object
func (ri RecipeIngredient) Measurement() measurement.Measurement {
	return measurement.New(ri.Amount, ri.Unit)
}

// NutritionInformation keeps values as "amount unit" strings, e.g. "240 cal"
type NutritionInformation struct {
	ID                    uint `gorm:"primarykey"`
	RecipeID              uint `gorm:"uniqueIndex"`
	Calories              *string
	CarbohydrateContent   *string
	CholesterolContent    *string
	FatContent            *string
	FiberContent          *string
	ProteinContent        *string
	SaturatedFatContent   *string
	ServingSize           *string
	SodiumContent         *string
	SugarContent          *string
	TransFatContent       *string
	UnsaturatedFatContent *string
}

// NutritionFields lists the nutrition field keys in display order
var NutritionFields = []string{
	"calories",
	"carbohydrate_content",
	"cholesterol_content",
	"fat_content",
	"fiber_content",
	"protein_content",
	"saturated_fat_content",
	"serving_size",
	"sodium_content",
	"sugar_content",
	"trans_fat_content",
	"unsaturated_fat_content",
}

func (n *NutritionInformation) field(key string) **string {
	switch key {
	case "calories":
		return &n.Calories
	case "carbohydrate_content":
		return &n.CarbohydrateContent
	case "cholesterol_content":
		return &n.CholesterolContent
	case "fat_content":
		return &n.FatContent
	case "fiber_content":
		return &n.FiberContent
	case "protein_content":
		return &n.ProteinContent
	case "saturated_fat_content":
		return &n.SaturatedFatContent
	case "serving_size":
		return &n.ServingSize
	case "sodium_content":
		return &n.SodiumContent
	case "sugar_content":
		return &n.SugarContent
	case "trans_fat_content":
		return &n.TransFatContent
	case "unsaturated_fat_content":
		return &n.UnsaturatedFatContent
	}
	return nil
}

// NutritionFromFields builds a record from extracted field values. Unknown
// keys are ignored. Returns nil when fields is empty.
func NutritionFromFields(fields map[string]string) *NutritionInformation {
	if len(fields) == 0 {
		return nil
	}
	n := &NutritionInformation{}
	for key, value := range fields {
		if p := n.field(key); p != nil {
			v := value
			*p = &v
		}
	}
	return n
}

// Fields returns the non-empty values keyed by field name
func (n *NutritionInformation) Fields() map[string]string {
	out := make(map[string]string)
	if n == nil {
		return out
	}
	for _, key := range NutritionFields {
		if p := n.field(key); p != nil && *p != nil {
			out[key] = **p
		}
	}
	return out
}

// CopyValuesFrom overwrites every nutrition value with the one from src,
// keeping the identity columns.
func (n *NutritionInformation) CopyValuesFrom(src *NutritionInformation) {
	for _, key := range NutritionFields {
		*n.field(key) = *src.field(key)
	}
}
