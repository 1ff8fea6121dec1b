package common

import (
	"fmt"
	"strings"
)

// ScrapedRecipe 從外部網頁擷取的食譜
// 只在單次請求內存在，不做持久化
type ScrapedRecipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	ImageURL    string   `json:"image_url,omitempty"`
	SourceURL   string   `json:"source_url"`
}

// IsEmpty 判斷是否為待手動補完的空白佔位結果
func (r *ScrapedRecipe) IsEmpty() bool {
	return r.Title == "" && len(r.Ingredients) == 0
}

// FormatIngredientLines 將食材行格式化為條列文字（除錯與日誌用）
func FormatIngredientLines(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("- %s\n", line))
	}
	return sb.String()
}
