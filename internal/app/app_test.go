package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/recipebox/internal/config"
)

type versionedSite struct {
	hits atomic.Int32
	body atomic.Value
}

func newVersionedSite(t *testing.T, body string) (*versionedSite, string) {
	t.Helper()
	site := &versionedSite{}
	site.body.Store(body)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site.hits.Add(1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(site.body.Load().(string)))
	}))
	t.Cleanup(srv.Close)
	return site, srv.URL
}

func importConfig() config.ImportConfig {
	return config.ImportConfig{
		UserAgent:    "recipebox-test",
		Timeout:      2 * time.Second,
		PageCacheTTL: time.Hour,
	}
}

func TestLiveFetcherReachesSourceDespiteCache(t *testing.T) {
	site, url := newVersionedSite(t, "v1")
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	cached, live := pageFetchers(importConfig(), client)

	for i := 0; i < 2; i++ {
		page, err := cached.Fetch(ctx, url)
		require.NoError(t, err)
		assert.Equal(t, "v1", string(page.Body))
	}
	assert.Equal(t, int32(1), site.hits.Load())

	site.body.Store("v2")
	page, err := live.Fetch(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(page.Body))
	assert.Equal(t, int32(2), site.hits.Load())

	// the refreshed copy replaces the stale one
	page, err = cached.Fetch(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(page.Body))
	assert.Equal(t, int32(2), site.hits.Load())
}

func TestPageFetchersWithoutRedis(t *testing.T) {
	site, url := newVersionedSite(t, "v1")

	cached, live := pageFetchers(importConfig(), nil)
	assert.Same(t, cached, live)

	for i := 0; i < 2; i++ {
		_, err := cached.Fetch(context.Background(), url)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), site.hits.Load())
}
