package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/vladimiradmaev/recipebox/internal/domain"
	apperrors "github.com/vladimiradmaev/recipebox/internal/errors"
	"github.com/vladimiradmaev/recipebox/internal/interfaces"
	"github.com/vladimiradmaev/recipebox/internal/logger"
)

// ReimportReport summarises one bulk reimport run
type ReimportReport struct {
	RunID              string
	Total              int
	Imported           int
	Skipped            int
	ConnectionFailures int
	NoDataFailures     int
	Errors             int
}

// Failed returns the number of recipes that could not be reimported
func (r *ReimportReport) Failed() int {
	return r.ConnectionFailures + r.NoDataFailures + r.Errors
}

// ReimportService refreshes every stored recipe from its source page
type ReimportService struct {
	recipes  domain.RecipeRepository
	importer interfaces.RecipeImporter
	delay    time.Duration
}

// NewReimportService creates a reimporter that waits delay between two page
// fetches. A zero delay disables throttling.
func NewReimportService(recipes domain.RecipeRepository, importer interfaces.RecipeImporter, delay time.Duration) *ReimportService {
	return &ReimportService{
		recipes:  recipes,
		importer: importer,
		delay:    delay,
	}
}

// ReimportAll processes recipes one at a time. Recipes without a source URL
// are skipped. Per-recipe failures are logged and counted and never stop the
// run; only context cancellation or a failure to list recipes does.
func (s *ReimportService) ReimportAll(ctx context.Context) (*ReimportReport, error) {
	report := &ReimportReport{RunID: uuid.NewString()}
	ctx = logger.ContextWithRunID(ctx, report.RunID)
	log := logger.WithContext(ctx)

	recipes, err := s.recipes.ListAll(ctx)
	if err != nil {
		return report, err
	}
	report.Total = len(recipes)
	log.Info("Reimport started", "recipes", report.Total, "delay", s.delay.String())

	limit := rate.Inf
	if s.delay > 0 {
		limit = rate.Every(s.delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	for _, recipe := range recipes {
		url := recipe.SourceURL()
		if url == "" {
			report.Skipped++
			log.Debug("Skipping recipe without url", "recipe_id", recipe.ID)
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			log.Warn("Reimport interrupted", "error", err)
			return report, err
		}

		_, err := s.importer.Handle(ctx, url, recipe.UserID)
		switch {
		case err == nil:
			report.Imported++
		case apperrors.IsConnectionFailed(err):
			report.ConnectionFailures++
			log.Warn("Reimport connection failed", "recipe_id", recipe.ID, "url", url, "error", err)
		case apperrors.IsNoStructuredData(err):
			report.NoDataFailures++
			log.Warn("Reimport found no structured data", "recipe_id", recipe.ID, "url", url)
		default:
			report.Errors++
			log.Error("Reimport failed", "recipe_id", recipe.ID, "url", url, "error", err)
		}
	}

	log.Info("Reimport finished",
		"imported", report.Imported,
		"skipped", report.Skipped,
		"failed", report.Failed())
	return report, nil
}
