package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamelib/internal/app/client/config"
	"gamelib/internal/domain/catalog"
	"gamelib/internal/utils/logger"
)

const searchResponse = `{
  "count": 1,
  "next": null,
  "previous": null,
  "results": [{
    "id": 3328,
    "name": "The Witcher 3: Wild Hunt",
    "released": "2015-05-18",
    "background_image": "https://media.rawg.io/w3.jpg",
    "rating": 4.66,
    "genres": [{"name": "Action"}, {"name": "RPG"}],
    "platforms": [{"platform": {"name": "PC"}}]
  }]
}`

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Env:             "local",
		CatalogBaseURL:  baseURL,
		PageSize:        20,
		PopularOrdering: "-rating",
		HTTPTimeout:     5 * time.Second,
	}
}

func TestCatalogClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/games", r.URL.Path)
		assert.Equal(t, "witcher", r.URL.Query().Get("search"))
		assert.Equal(t, "20", r.URL.Query().Get("page_size"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Empty(t, r.URL.Query().Get("ordering"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchResponse))
	}))
	defer server.Close()

	cfg := testConfig(server.URL + "/api/")
	cfg.APIKey = "test-key"
	client, err := NewCatalogClient(cfg, logger.Discard())
	require.NoError(t, err)

	page, err := client.Search(context.Background(), "witcher")
	require.NoError(t, err)
	require.Len(t, page.Results, 1)

	got := page.Results[0]
	assert.Equal(t, int64(3328), got.ID)
	assert.Equal(t, "The Witcher 3: Wild Hunt", got.Name)
	assert.Equal(t, []string{"Action", "RPG"}, got.Genres)
	assert.Equal(t, []string{"PC"}, got.Platforms)
	assert.Equal(t, 4.66, got.Rating)
}

func TestCatalogClient_Popular(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "-rating", r.URL.Query().Get("ordering"))
		assert.False(t, r.URL.Query().Has("search"))
		assert.False(t, r.URL.Query().Has("key"))
		w.Write([]byte(`{"count":0,"results":[]}`))
	}))
	defer server.Close()

	client, err := NewCatalogClient(testConfig(server.URL), logger.Discard())
	require.NoError(t, err)

	page, err := client.Popular(context.Background())
	require.NoError(t, err)
	assert.Empty(t, page.Results)
}

func TestCatalogClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/42", r.URL.Path)
		w.Write([]byte(`{"id":42,"name":"Hades","description":"<p>Hell</p>","description_raw":"Hell"}`))
	}))
	defer server.Close()

	client, err := NewCatalogClient(testConfig(server.URL), logger.Discard())
	require.NoError(t, err)

	got, err := client.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Hades", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Hell", *got.Description)
}

func TestCatalogClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantMsg: "catalog returned status 500: boom"},
		{name: "unauthorized json", status: http.StatusUnauthorized, body: `{"error":"The key parameter is not provided"}`, wantMsg: "catalog returned status 401: The key parameter is not provided"},
		{name: "malformed payload", status: http.StatusOK, body: `{"results": [`, wantMsg: "decode catalog response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewCatalogClient(testConfig(server.URL), logger.Discard())
			require.NoError(t, err)

			_, err = client.Search(context.Background(), "zelda")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCatalogClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := NewCatalogClient(testConfig(url), logger.Discard())
	require.NoError(t, err)

	_, err = client.Popular(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog request failed")
}

func TestCatalogClient_Retries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(searchResponse))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxRetries = 2
	cfg.RetryDelay = time.Millisecond
	client, err := NewCatalogClient(cfg, logger.Discard())
	require.NoError(t, err)

	page, err := client.Search(context.Background(), "witcher")
	require.NoError(t, err)
	assert.Len(t, page.Results, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestCatalogClient_NoRetryByDefault(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewCatalogClient(testConfig(server.URL), logger.Discard())
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "witcher")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCatalogClient_ClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxRetries = 5
	client, err := NewCatalogClient(cfg, logger.Discard())
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "witcher")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCatalogClient_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, err := NewCatalogClient(testConfig(server.URL), logger.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Search(ctx, "slow")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewCatalogClient_InvalidURL(t *testing.T) {
	_, err := NewCatalogClient(testConfig("not a url"), logger.Discard())
	assert.Error(t, err)
}

func TestNewCatalogClient_ExportedType(t *testing.T) {
	c, err := NewCatalogClient(testConfig("http://catalog.local/api"), logger.Discard())
	require.NoError(t, err)

	var searcher catalog.Searcher = c
	assert.NotNil(t, searcher)
	assert.IsType(t, &CatalogClient{}, searcher)
}
