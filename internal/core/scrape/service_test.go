package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"camp-planner/internal/core/scrape/cache"
	"camp-planner/internal/infrastructure/config"
	"camp-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	// 服務層會寫日誌，測試用空 logger 避免產生日誌檔
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Scraper: config.ScraperConfig{
			Timeout:     5 * time.Second,
			UserAgent:   "camp-planner/1.0 (+https://camp-planner.app)",
			MaxHTMLSize: 5 * 1024 * 1024,
		},
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         10,
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		},
	}
}

const recipePage = `<html><head><script type="application/ld+json">{
	"@type": "Recipe",
	"name": "Skillet Cornbread",
	"recipeIngredient": ["1 cup cornmeal", "1 cup flour"],
	"recipeInstructions": [{"@type": "HowToStep", "text": "Mix and bake in the skillet."}]
}</script></head><body></body></html>`

func TestScrapeRecipeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(recipePage))
	}))
	defer server.Close()

	service := NewService(testConfig(), nil)

	recipe, err := service.ScrapeRecipe(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Skillet Cornbread", recipe.Title)
	assert.Equal(t, []string{"1 cup cornmeal", "1 cup flour"}, recipe.Ingredients)
	assert.Equal(t, server.URL, recipe.SourceURL)
}

func TestScrapeRecipePlaceholderWhenNoRecipe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1>Just a blog post</h1></body></html>`))
	}))
	defer server.Close()

	service := NewService(testConfig(), nil)

	recipe, err := service.ScrapeRecipe(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, recipe.IsEmpty())
	assert.Equal(t, server.URL, recipe.SourceURL)
}

func TestScrapeRecipeHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	service := NewService(testConfig(), nil)

	_, err := service.ScrapeRecipe(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestScrapeRecipeInvalidURL(t *testing.T) {
	service := NewService(testConfig(), nil)

	_, err := service.ScrapeRecipe(context.Background(), "ftp://example.com/recipe")
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))

	_, err = service.ScrapeRecipe(context.Background(), "not a url")
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
}

func TestScrapeRecipeUsesCache(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(recipePage))
	}))
	defer server.Close()

	cfg := testConfig()
	manager := cache.NewManager(cfg)
	require.NotNil(t, manager)
	defer manager.Close()

	service := NewService(cfg, manager)

	first, err := service.ScrapeRecipe(context.Background(), server.URL)
	require.NoError(t, err)

	second, err := service.ScrapeRecipe(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestScrapeRecipeDoesNotCachePlaceholder(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`<html><body>nothing here</body></html>`))
	}))
	defer server.Close()

	cfg := testConfig()
	manager := cache.NewManager(cfg)
	require.NotNil(t, manager)
	defer manager.Close()

	service := NewService(cfg, manager)

	for i := 0; i < 2; i++ {
		recipe, err := service.ScrapeRecipe(context.Background(), server.URL)
		require.NoError(t, err)
		assert.True(t, recipe.IsEmpty())
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestScrapeRecipeSendsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(recipePage))
	}))
	defer server.Close()

	cfg := testConfig()
	service := NewService(cfg, nil)

	_, err := service.ScrapeRecipe(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, cfg.Scraper.UserAgent, gotUA)
}
