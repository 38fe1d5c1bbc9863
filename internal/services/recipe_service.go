package services

import (
	"context"
	"fmt"

	"github.com/vladimiradmaev/recipebox/internal/domain"
	apperrors "github.com/vladimiradmaev/recipebox/internal/errors"
)

// ErrRecipeNotFound is returned for missing recipes and for recipes owned by
// another user.
var ErrRecipeNotFound = apperrors.New(apperrors.ErrorTypeValidation, "RECIPE_NOT_FOUND", "Recipe not found")

type RecipeService struct {
	recipes domain.RecipeRepository
}

func NewRecipeService(recipes domain.RecipeRepository) *RecipeService {
	return &RecipeService{recipes: recipes}
}

func (s *RecipeService) GetUserRecipes(ctx context.Context, userID uint) ([]domain.Recipe, error) {
	recipes, err := s.recipes.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

func (s *RecipeService) GetRecipe(ctx context.Context, userID, recipeID uint) (*domain.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil || recipe.UserID != userID {
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}

// DeleteRecipe removes the recipe together with its ingredient links and
// nutrition record.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.GetRecipe(ctx, userID, recipeID); err != nil {
		return err
	}
	if err := s.recipes.Delete(ctx, recipeID); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}
