package grocery

// ParsedIngredient 解析後的食材行
type ParsedIngredient struct {
	Original   string `json:"original"`             // 原始文字
	Normalized string `json:"normalized"`           // 合併用鍵（小寫、去標點）
	Amount     string `json:"amount,omitempty"`     // 份量片段（未驗證單位）
	Name       string `json:"name"`                 // 食材名稱
}

// RecipeRef 食譜引用
type RecipeRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// RecipeIngredients 單一食譜的食材清單
type RecipeIngredients struct {
	RecipeID    string   `json:"recipe_id"`
	RecipeTitle string   `json:"recipe_title"`
	Ingredients []string `json:"ingredients"`
}

// MergedIngredient 合併後的採買清單項目
type MergedIngredient struct {
	Name           string      `json:"name"`
	Amounts        []string    `json:"amounts,omitempty"`
	Recipes        []RecipeRef `json:"recipes"`
	CombinedAmount string      `json:"combined_amount,omitempty"`
}
