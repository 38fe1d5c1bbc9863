package services

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/vladimiradmaev/recipebox/internal/domain"
	apperrors "github.com/vladimiradmaev/recipebox/internal/errors"
	"github.com/vladimiradmaev/recipebox/internal/logger"
	"github.com/vladimiradmaev/recipebox/internal/structured"
)

// FetchRecipe imports a recipe from a web page
type FetchRecipe struct {
	fetcher   domain.PageFetcher
	extractor *structured.Extractor
	builder   *RecipeBuilder
}

func NewFetchRecipe(fetcher domain.PageFetcher, extractor *structured.Extractor, builder *RecipeBuilder) *FetchRecipe {
	return &FetchRecipe{
		fetcher:   fetcher,
		extractor: extractor,
		builder:   builder,
	}
}

// Handle downloads url and imports the recipe it describes on behalf of
// ownerID. Structured data formats are tried in priority order and the first
// one that holds a recipe-shaped item is used.
//
// Fetch failures and non-2xx responses are reported as connection failures; a
// page without usable markup is reported as having no structured data. Any
// other error is returned unchanged.
func (f *FetchRecipe) Handle(ctx context.Context, url string, ownerID uint) (*domain.Recipe, error) {
	page, err := f.fetcher.Fetch(ctx, url)
	if err != nil {
		if apperrors.IsConnectionFailed(err) {
			return nil, err
		}
		return nil, apperrors.NewConnectionFailedError(url, err.Error(), err)
	}
	if !page.OK() {
		return nil, apperrors.NewConnectionFailedError(url, fmt.Sprintf("unexpected status %d", page.StatusCode), nil)
	}

	doc := DecodeBody(page)
	for _, format := range structured.Formats {
		items := f.extractor.ExtractFormat(format, doc, url)
		if SelectRecipeItem(items) == nil {
			continue
		}

		logger.Debug("Structured data found", "url", url, "format", format, "items", len(items))
		return f.builder.BuildFromItems(ctx, items, url, ownerID)
	}

	return nil, apperrors.NewNoStructuredDataError(url)
}

// DecodeBody converts the page body to UTF-8 using the declared or sniffed
// charset. Undecodable bodies are used as is.
func DecodeBody(page *domain.Page) string {
	r, err := charset.NewReader(bytes.NewReader(page.Body), page.ContentType)
	if err != nil {
		return string(page.Body)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return string(page.Body)
	}
	return string(decoded)
}
