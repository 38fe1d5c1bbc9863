package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/recipebox/internal/config"
	apperrors "github.com/vladimiradmaev/recipebox/internal/errors"
)

func testImportConfig() config.ImportConfig {
	return config.ImportConfig{
		UserAgent: "recipebox-test",
		Timeout:   2 * time.Second,
	}
}

func TestHTTPFetcherReturnsPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "recipebox-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	page, err := NewHTTPFetcher(testImportConfig()).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.True(t, page.OK())
	assert.Equal(t, "text/html; charset=utf-8", page.ContentType)
	assert.Equal(t, "<html>ok</html>", string(page.Body))
}

func TestHTTPFetcherKeepsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	page, err := NewHTTPFetcher(testImportConfig()).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, page.StatusCode)
	assert.False(t, page.OK())
}

func TestHTTPFetcherFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("moved"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	page, err := NewHTTPFetcher(testImportConfig()).Fetch(context.Background(), srv.URL+"/old")
	require.NoError(t, err)
	assert.Equal(t, "moved", string(page.Body))
}

func TestHTTPFetcherTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPFetcher(testImportConfig()).Fetch(context.Background(), url)
	require.Error(t, err)
	assert.True(t, apperrors.IsConnectionFailed(err))
}
