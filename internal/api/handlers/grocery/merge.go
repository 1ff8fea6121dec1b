package grocery

import (
	"net/http"

	groceryCore "camp-planner/internal/core/grocery"
	"camp-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MergeRequest 合併多份食譜的食材為採買清單
type MergeRequest struct {
	Recipes []groceryCore.RecipeIngredients `json:"recipes" binding:"required"`
}

// MergeResponse 合併結果
type MergeResponse struct {
	Items []groceryCore.MergedIngredient `json:"items"`
	Count int                            `json:"count"`
}

// HandleMerge 合併食材清單
// POST /api/v1/grocery/merge
func HandleMerge(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理採買清單合併請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	items := groceryCore.MergeIngredients(req.Recipes)

	common.LogInfo("採買清單合併完成",
		zap.String("request_id", requestID),
		zap.Int("recipes_count", len(req.Recipes)),
		zap.Int("items_count", len(items)),
	)

	c.JSON(http.StatusOK, MergeResponse{
		Items: items,
		Count: len(items),
	})
}
