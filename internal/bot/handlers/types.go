package handlers

import (
	apperrors "github.com/vladimiradmaev/recipebox/internal/errors"
	"github.com/vladimiradmaev/recipebox/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService   interfaces.UserServiceInterface
	RecipeService interfaces.RecipeServiceInterface
	Importer      interfaces.RecipeImporter
	ErrorHandler  *apperrors.Handler
}
