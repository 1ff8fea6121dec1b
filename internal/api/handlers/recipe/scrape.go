package recipe

import (
	"net/http"

	"camp-planner/internal/core/scrape"
	"camp-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜處理程序
type Handler struct {
	scrapeService *scrape.Service
}

// NewHandler 創建新的食譜處理程序
func NewHandler(scrapeService *scrape.Service) *Handler {
	return &Handler{
		scrapeService: scrapeService,
	}
}

// ExtractRequest 內文備援擷取請求
type ExtractRequest struct {
	HTML string `json:"html" binding:"required"` // 頁面原始 HTML 或純文字
}

// ExtractResponse 內文備援擷取結果
type ExtractResponse struct {
	Ingredients []string `json:"ingredients"`
}

// HandleScrape 擷取外部網址的食譜
// GET /api/v1/recipes/scrape?url=<url>
func (h *Handler) HandleScrape(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	pageURL := c.Query("url")
	if pageURL == "" {
		common.LogError("缺少 url 參數",
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	common.LogInfo("開始處理食譜擷取請求",
		zap.String("request_id", requestID),
		zap.String("url", pageURL),
		zap.String("client_ip", c.ClientIP()),
	)

	recipe, err := h.scrapeService.ScrapeRecipe(c.Request.Context(), pageURL)
	if err != nil {
		if common.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		common.LogError("食譜擷取失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("url", pageURL),
		)
		// 網路層失敗：提示使用者改用手動輸入
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Could not fetch the recipe page. Please enter the recipe manually.",
			"code":  "SCRAPE_FAILED",
		})
		return
	}

	common.LogInfo("食譜擷取請求完成",
		zap.String("request_id", requestID),
		zap.String("title", recipe.Title),
		zap.Bool("placeholder", recipe.IsEmpty()),
	)

	c.JSON(http.StatusOK, recipe)
}

// HandleExtract 從頁面內文啟發式找出食材行（JSON-LD 不可用時的備援）
// POST /api/v1/recipes/extract
func (h *Handler) HandleExtract(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ingredients := scrape.ParseIngredientsFromContent(req.HTML)

	common.LogInfo("內文擷取完成",
		zap.String("request_id", requestID),
		zap.Int("ingredients_count", len(ingredients)),
	)

	c.JSON(http.StatusOK, ExtractResponse{Ingredients: ingredients})
}
