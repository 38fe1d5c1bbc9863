package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/recipebox/internal/domain"
)

func TestRecipeServiceOwnership(t *testing.T) {
	recipes := newMemoryRecipes()
	mine := recipes.add(domain.Recipe{Title: "mine", UserID: 1})
	theirs := recipes.add(domain.Recipe{Title: "theirs", UserID: 2})
	svc := NewRecipeService(recipes)
	ctx := context.Background()

	list, err := svc.GetUserRecipes(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "mine", list[0].Title)

	got, err := svc.GetRecipe(ctx, 1, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)

	_, err = svc.GetRecipe(ctx, 1, theirs.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	_, err = svc.GetRecipe(ctx, 1, 999)
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, 1, theirs.ID), ErrRecipeNotFound)
	require.NoError(t, svc.DeleteRecipe(ctx, 1, mine.ID))
	assert.Len(t, recipes.recipes, 1)
}
