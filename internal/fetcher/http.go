package fetcher

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/vladimiradmaev/recipebox/internal/config"
	"github.com/vladimiradmaev/recipebox/internal/domain"
	apperrors "github.com/vladimiradmaev/recipebox/internal/errors"
	"github.com/vladimiradmaev/recipebox/internal/logger"
)

const maxRedirects = 10

// HTTPFetcher downloads pages over HTTP
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher creates a fetcher with the configured timeout and user agent
func NewHTTPFetcher(cfg config.ImportConfig) *HTTPFetcher {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects)).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	return &HTTPFetcher{client: client}
}

// Fetch returns the page for any HTTP status. Only transport failures are
// errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*domain.Page, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, apperrors.NewConnectionFailedError(url, err.Error(), err)
	}

	logger.Debug("Page fetched",
		"url", url,
		"status", resp.StatusCode(),
		"bytes", len(resp.Body()),
		"duration", resp.Time().String())

	return &domain.Page{
		URL:         url,
		StatusCode:  resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.Body(),
	}, nil
}
