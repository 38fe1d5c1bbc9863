package repository

import (
	"gorm.io/gorm"

	"github.com/vladimiradmaev/recipebox/internal/domain"
)

// Repositories bundles the gorm-backed repositories
type Repositories struct {
	Users       *UserRepository
	Recipes     *RecipeRepository
	Ingredients *IngredientRepository
}

// NewRepositories creates every repository on top of db
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db),
		Recipes:     NewRecipeRepository(db),
		Ingredients: NewIngredientRepository(db),
	}
}

var (
	_ domain.UserRepository       = (*UserRepository)(nil)
	_ domain.RecipeRepository     = (*RecipeRepository)(nil)
	_ domain.IngredientRepository = (*IngredientRepository)(nil)
)
