// Package app wires configuration, storage and services together for the
// bot and the command line tool.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/vladimiradmaev/recipebox/internal/bot/state"
	"github.com/vladimiradmaev/recipebox/internal/config"
	"github.com/vladimiradmaev/recipebox/internal/database"
	"github.com/vladimiradmaev/recipebox/internal/domain"
	"github.com/vladimiradmaev/recipebox/internal/fetcher"
	"github.com/vladimiradmaev/recipebox/internal/logger"
	"github.com/vladimiradmaev/recipebox/internal/repository"
	"github.com/vladimiradmaev/recipebox/internal/services"
	"github.com/vladimiradmaev/recipebox/internal/structured"
)

type App struct {
	Config       *config.Config
	DB           *gorm.DB
	Redis        *redis.Client
	Repositories *repository.Repositories
	Users        *services.UserService
	Recipes      *services.RecipeService
	Importer     *services.FetchRecipe

	// liveImporter always reaches the source page; reimports use it
	liveImporter *services.FetchRecipe
}

// New connects to postgres, and to redis when configured, and builds the
// import pipeline. A redis that cannot be reached is logged and skipped.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connection established and migrations completed")

	a := &App{
		Config:       cfg,
		DB:           db,
		Repositories: repository.NewRepositories(db),
	}

	if cfg.Redis.Enabled() {
		client, err := database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without it", "addr", cfg.Redis.Addr, "error", err)
		} else {
			a.Redis = client
			logger.Info("Redis connection established", "addr", cfg.Redis.Addr)
		}
	}

	pages, livePages := pageFetchers(cfg.Import, a.Redis)

	builder := services.NewRecipeBuilder(
		a.Repositories.Recipes,
		services.NewIngredientParser(a.Repositories.Ingredients),
		services.NewNutritionExtractor(),
	)
	a.Importer = services.NewFetchRecipe(pages, structured.NewExtractor(), builder)
	a.liveImporter = services.NewFetchRecipe(livePages, structured.NewExtractor(), builder)
	a.Users = services.NewUserService(a.Repositories.Users)
	a.Recipes = services.NewRecipeService(a.Repositories.Recipes)

	logger.Info("Services initialized successfully")
	return a, nil
}

// pageFetchers returns the fetcher used for imports and one that never answers
// from the page cache. Without redis both are the plain HTTP fetcher.
func pageFetchers(cfg config.ImportConfig, client *redis.Client) (cached, live domain.PageFetcher) {
	direct := fetcher.NewHTTPFetcher(cfg)
	if client == nil || cfg.PageCacheTTL <= 0 {
		return direct, direct
	}
	cache := fetcher.NewCachingFetcher(direct, client, cfg.PageCacheTTL)
	return cache, cache.Refreshing()
}

// Reimporter returns a reimport service that waits delay between pages. It
// fetches every source page again and refreshes the page cache.
func (a *App) Reimporter(delay time.Duration) *services.ReimportService {
	return services.NewReimportService(a.Repositories.Recipes, a.liveImporter, delay)
}

// StateManager keeps conversation state in redis when it is available
func (a *App) StateManager() state.StateManager {
	if a.Redis != nil {
		return state.NewRedisManager(a.Redis)
	}
	return state.NewManager()
}

// Close releases the database and redis connections
func (a *App) Close() error {
	var firstErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close redis: %w", err)
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close database: %w", err)
		}
	}
	return firstErr
}
