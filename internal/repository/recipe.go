package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vladimiradmaev/recipebox/internal/domain"
	apperrors "github.com/vladimiradmaev/recipebox/internal/errors"
)

// RecipeRepository handles recipe data operations
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) FindByTitleAndURLOrNew(ctx context.Context, title string, url *string) (*domain.Recipe, error) {
	query := r.db.WithContext(ctx).Preload("Nutrition").Where("title = ?", title)
	if url == nil {
		query = query.Where("url IS NULL")
	} else {
		query = query.Where("url = ?", *url)
	}

	var recipe domain.Recipe
	err := query.Order("id").First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.Recipe{Title: title, URL: url}, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &recipe, nil
}

// SaveImported writes the recipe row, replaces its ingredient links and
// upserts its nutrition record in one transaction.
func (r *RecipeRepository) SaveImported(ctx context.Context, recipe *domain.Recipe, ingredients []domain.RecipeIngredient) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&domain.RecipeIngredient{}).Error; err != nil {
			return err
		}

		links := make([]domain.RecipeIngredient, len(ingredients))
		for i, link := range ingredients {
			link.RecipeID = recipe.ID
			links[i] = link
		}
		if len(links) > 0 {
			if err := tx.Omit("Ingredient").Create(&links).Error; err != nil {
				return err
			}
		}
		recipe.Ingredients = links

		if recipe.Nutrition != nil {
			recipe.Nutrition.RecipeID = recipe.ID
			if err := tx.Save(recipe.Nutrition).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, id uint) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Ingredients.Ingredient").
		Preload("Nutrition").
		First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &recipe, nil
}

func (r *RecipeRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return recipes, nil
}

// ListAll returns every recipe in id order, without associations
func (r *RecipeRepository) ListAll(ctx context.Context) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	if err := r.db.WithContext(ctx).Order("id").Find(&recipes).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return recipes, nil
}

// Delete removes the recipe for good. Ingredient links and nutrition go with
// it through ON DELETE CASCADE.
func (r *RecipeRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Unscoped().Delete(&domain.Recipe{}, id).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}
