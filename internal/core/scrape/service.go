package scrape

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"camp-planner/internal/core/scrape/cache"
	"camp-planner/internal/infrastructure/config"
	"camp-planner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Service 食譜擷取服務
type Service struct {
	config       *config.Config
	client       *resty.Client
	cacheManager *cache.Manager
	redisCache   *cache.Service
}

// NewService 創建食譜擷取服務
// 設定了 cache.redis_addr 時優先使用共享的 Redis 緩存
func NewService(cfg *config.Config, cacheManager *cache.Manager) *Service {
	client := resty.New().
		SetTimeout(cfg.Scraper.Timeout).
		SetHeader("User-Agent", cfg.Scraper.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml")

	var redisCache *cache.Service
	if cfg.Cache.Enabled && cfg.Cache.RedisAddr != "" {
		service, err := cache.NewService(&cfg.Cache)
		if err != nil {
			// Redis 連不上時退回程序內緩存
			common.LogWarn("Redis 緩存初始化失敗，使用程序內緩存",
				zap.Error(err),
				zap.String("addr", cfg.Cache.RedisAddr),
			)
		} else {
			redisCache = service
		}
	}

	return &Service{
		config:       cfg,
		client:       client,
		cacheManager: cacheManager,
		redisCache:   redisCache,
	}
}

// ScrapeRecipe 擷取外部網址的食譜
// 找不到食譜回傳空白佔位結果；只有網路層失敗才回傳錯誤
func (s *Service) ScrapeRecipe(ctx context.Context, pageURL string) (*common.ScrapedRecipe, error) {
	if err := validateURL(pageURL); err != nil {
		return nil, err
	}

	// 檢查緩存
	if s.redisCache != nil {
		if cached, err := s.redisCache.Get(ctx, pageURL); err == nil {
			common.LogCacheHit("scrape-redis", pageURL)
			return cached, nil
		}
	} else if s.cacheManager != nil {
		if cached, err := s.cacheManager.Get(ctx, pageURL); err == nil && cached != "" {
			var recipe common.ScrapedRecipe
			if err := common.ParseJSON(cached, &recipe); err == nil {
				return &recipe, nil
			}
		}
	}

	start := time.Now()
	html, err := s.fetchHTML(ctx, pageURL)
	common.LogScrapeCall(pageURL, time.Since(start), err, "")
	if err != nil {
		return nil, err
	}

	recipe := ExtractRecipeFromHTML(html, pageURL)

	common.LogInfo("食譜擷取完成",
		zap.String("url", pageURL),
		zap.String("title", recipe.Title),
		zap.Int("ingredients_count", len(recipe.Ingredients)),
		zap.Int("steps_count", len(recipe.Steps)),
		zap.Bool("placeholder", recipe.IsEmpty()),
	)

	// 只緩存有內容的結果，空白佔位不值得佔緩存空間
	if !recipe.IsEmpty() {
		if s.redisCache != nil {
			_ = s.redisCache.Set(ctx, pageURL, recipe)
		} else if s.cacheManager != nil {
			if data, err := common.ToJSON(recipe); err == nil {
				_ = s.cacheManager.Set(ctx, pageURL, data)
			}
		}
	}

	return recipe, nil
}

// fetchHTML 抓取頁面 HTML
func (s *Service) fetchHTML(ctx context.Context, pageURL string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}

	if !resp.IsSuccess() {
		return "", fmt.Errorf("failed to fetch page: status %d", resp.StatusCode())
	}

	body := resp.Body()
	if int64(len(body)) > s.config.Scraper.MaxHTMLSize {
		body = body[:s.config.Scraper.MaxHTMLSize]
	}

	return string(body), nil
}

// validateURL 檢查網址格式，僅允許 http/https
func validateURL(pageURL string) error {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return common.NewValidationError("invalid url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return common.NewValidationError("url scheme must be http or https")
	}
	if parsed.Host == "" {
		return common.NewValidationError("url host is required")
	}
	return nil
}
