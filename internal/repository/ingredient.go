package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vladimiradmaev/recipebox/internal/domain"
	apperrors "github.com/vladimiradmaev/recipebox/internal/errors"
)

// IngredientRepository handles ingredient data operations
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// FindBySlugOrCreate returns the ingredient with slug, creating it with name
// when missing. A concurrent insert of the same slug is tolerated.
func (r *IngredientRepository) FindBySlugOrCreate(ctx context.Context, slug, name string) (*domain.Ingredient, error) {
	db := r.db.WithContext(ctx)

	var ingredient domain.Ingredient
	err := db.Where("slug = ?", slug).Limit(1).Find(&ingredient).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if ingredient.ID != 0 {
		return &ingredient, nil
	}

	ingredient = domain.Ingredient{Name: name, Slug: slug}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&ingredient).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	if ingredient.ID == 0 {
		// lost the race, read the winner
		if err := db.Where("slug = ?", slug).First(&ingredient).Error; err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
	}
	return &ingredient, nil
}
