package interfaces

import (
	"context"

	"github.com/vladimiradmaev/recipebox/internal/domain"
)

// UserServiceInterface defines the contract for user operations
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*domain.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
}

// RecipeImporter defines the contract for importing a recipe page
type RecipeImporter interface {
	Handle(ctx context.Context, url string, ownerID uint) (*domain.Recipe, error)
}

// RecipeServiceInterface defines the contract for reading a user's recipes
type RecipeServiceInterface interface {
	GetUserRecipes(ctx context.Context, userID uint) ([]domain.Recipe, error)
	GetRecipe(ctx context.Context, userID, recipeID uint) (*domain.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, recipeID uint) error
}
