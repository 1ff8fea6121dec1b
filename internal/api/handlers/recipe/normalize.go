package recipe

import (
	"net/http"

	recipeCore "camp-planner/internal/core/recipe"
	"camp-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NormalizeRequest 整理自由文字的食材與步驟區塊
type NormalizeRequest struct {
	IngredientsText string `json:"ingredients_text"` // 食材區塊（可空）
	StepsText       string `json:"steps_text"`       // 步驟區塊（可空）
}

// NormalizeResponse 整理結果
type NormalizeResponse struct {
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

// HandleNormalize 整理食譜文字
// POST /api/v1/recipes/normalize
func (h *Handler) HandleNormalize(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response := NormalizeResponse{
		Ingredients: recipeCore.NormalizeIngredients(req.IngredientsText),
		Steps:       recipeCore.NormalizeSteps(req.StepsText),
	}

	common.LogInfo("食譜文字整理完成",
		zap.String("request_id", requestID),
		zap.Int("ingredients_count", len(response.Ingredients)),
		zap.Int("steps_count", len(response.Steps)),
	)

	c.JSON(http.StatusOK, response)
}
