package domain

import (
	"context"
)

// Page is a fetched web page
type Page struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports whether the page was served with a 2xx status
func (p *Page) OK() bool {
	return p.StatusCode >= 200 && p.StatusCode < 300
}

// PageFetcher downloads pages for import
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// UserRepository handles user persistence
type UserRepository interface {
	GetOrCreate(ctx context.Context, telegramID int64, username, firstName, lastName string) (*User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*User, error)
}

// RecipeRepository handles recipe persistence
type RecipeRepository interface {
	// FindByTitleAndURLOrNew returns the stored recipe with exactly this title
	// and url, or an unsaved one carrying them.
	FindByTitleAndURLOrNew(ctx context.Context, title string, url *string) (*Recipe, error)
	// SaveImported creates or updates recipe and replaces its ingredient set
	// with ingredients in a single transaction.
	SaveImported(ctx context.Context, recipe *Recipe, ingredients []RecipeIngredient) error
	// GetByID returns nil without an error when the recipe does not exist
	GetByID(ctx context.Context, id uint) (*Recipe, error)
	ListByUser(ctx context.Context, userID uint) ([]Recipe, error)
	ListAll(ctx context.Context) ([]Recipe, error)
	Delete(ctx context.Context, id uint) error
}

// IngredientRepository handles ingredient persistence
type IngredientRepository interface {
	FindBySlugOrCreate(ctx context.Context, slug, name string) (*Ingredient, error)
}

// BotService handles telegram bot operations
type BotService interface {
	Start(ctx context.Context) error
	Stop()
}
