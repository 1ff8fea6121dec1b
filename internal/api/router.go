package api

import (
	"context"
	"net/http"
	"time"

	groceryHandler "camp-planner/internal/api/handlers/grocery"
	"camp-planner/internal/api/handlers/health"
	recipeHandler "camp-planner/internal/api/handlers/recipe"
	"camp-planner/internal/api/middleware"
	"camp-planner/internal/core/scrape"
	scrapeCache "camp-planner/internal/core/scrape/cache"
	"camp-planner/internal/infrastructure/config"
	"camp-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置（擷取外部頁面是最慢的請求路徑）
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (6MB，內文備援擷取會帶整頁 HTML)
	maxBodySize = 6 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheManager *scrapeCache.Manager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流與去重
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Duration("scraper_timeout", cfg.Scraper.Timeout),
	)

	// 初始化擷取服務
	scrapeService := scrape.NewService(cfg, cacheManager)

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// 設置配置與緩存（健康檢查用）
		c.Set("config", cfg)
		c.Set("scrape_cache", cacheManager)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		recipeHandlerInstance := recipeHandler.NewHandler(scrapeService)

		// 食譜相關路由
		recipeGroup := api.Group("/recipes")
		{
			// 從外部網址擷取食譜
			recipeGroup.GET("/scrape", recipeHandlerInstance.HandleScrape)

			// 整理自由文字的食材與步驟
			recipeGroup.POST("/normalize", recipeHandlerInstance.HandleNormalize)

			// 內文備援擷取
			recipeGroup.POST("/extract", recipeHandlerInstance.HandleExtract)
		}

		// 採買清單路由
		groceryGroup := api.Group("/grocery")
		{
			groceryGroup.POST("/merge", groceryHandler.HandleMerge)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
