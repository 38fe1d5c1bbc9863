package fetcher

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vladimiradmaev/recipebox/internal/domain"
	"github.com/vladimiradmaev/recipebox/internal/logger"
)

const pageKeyPrefix = "recipebox:page:"

// CachingFetcher serves successful pages from redis for a while before asking
// the wrapped fetcher again. Redis failures fall through to the wrapped
// fetcher.
type CachingFetcher struct {
	next    domain.PageFetcher
	client  *redis.Client
	ttl     time.Duration
	refresh bool
}

func NewCachingFetcher(next domain.PageFetcher, client *redis.Client, ttl time.Duration) *CachingFetcher {
	return &CachingFetcher{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

// Refreshing returns a fetcher over the same cache that always asks the
// wrapped fetcher and writes the fresh page back.
func (c *CachingFetcher) Refreshing() *CachingFetcher {
	fresh := *c
	fresh.refresh = true
	return &fresh
}

func (c *CachingFetcher) Fetch(ctx context.Context, url string) (*domain.Page, error) {
	if !c.refresh {
		if page, ok := c.lookup(ctx, url); ok {
			logger.Debug("Page served from cache", "url", url)
			return page, nil
		}
	}

	page, err := c.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	switch {
	case page.OK() && c.ttl > 0:
		c.store(ctx, url, page)
	case c.refresh:
		// a page that stopped loading must not be served from cache
		if err := c.Invalidate(ctx, url); err != nil {
			logger.Warn("Page cache invalidation failed", "url", url, "error", err)
		}
	}
	return page, nil
}

// Invalidate drops the cached copy of url
func (c *CachingFetcher) Invalidate(ctx context.Context, url string) error {
	return c.client.Del(ctx, pageKeyPrefix+url).Err()
}

func (c *CachingFetcher) lookup(ctx context.Context, url string) (*domain.Page, bool) {
	fields, err := c.client.HGetAll(ctx, pageKeyPrefix+url).Result()
	if err != nil {
		logger.Warn("Page cache read failed", "url", url, "error", err)
		return nil, false
	}
	if len(fields) == 0 {
		return nil, false
	}

	status, err := strconv.Atoi(fields["status"])
	if err != nil {
		return nil, false
	}
	return &domain.Page{
		URL:         url,
		StatusCode:  status,
		ContentType: fields["content_type"],
		Body:        []byte(fields["body"]),
	}, true
}

func (c *CachingFetcher) store(ctx context.Context, url string, page *domain.Page) {
	key := pageKeyPrefix + url
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"status", page.StatusCode,
			"content_type", page.ContentType,
			"body", page.Body)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		logger.Warn("Page cache write failed", "url", url, "error", err)
	}
}
