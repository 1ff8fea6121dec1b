package scrape

import (
	"regexp"
	"strings"

	"camp-planner/internal/pkg/common"
)

// ld+json 區塊以正則掃描，不做完整 DOM 解析
var scriptPattern = regexp.MustCompile(`(?is)<script[^>]*type\s*=\s*["']application/ld\+json["'][^>]*>(.*?)</script>`)

// 段落分隔（空白行）
var blankLinePattern = regexp.MustCompile(`\n\s*\n`)

// ExtractRecipeFromHTML 從頁面 HTML 的 JSON-LD 區塊擷取食譜
// 找不到食譜不是錯誤，回傳只帶來源網址的空白佔位結果讓使用者手動補完
func ExtractRecipeFromHTML(html, sourceURL string) *common.ScrapedRecipe {
	for _, match := range scriptPattern.FindAllStringSubmatch(html, -1) {
		block := strings.TrimSpace(match[1])
		if block == "" {
			continue
		}

		var doc interface{}
		if err := common.ParseJSON(block, &doc); err != nil {
			// 部分網站的 JSON-LD 鍵漏掉引號，修補後再試一次
			if err := common.ParseJSON(common.QuoteJSONKeys(block), &doc); err != nil {
				// 格式不正確的區塊單獨跳過，不中斷整個擷取
				continue
			}
		}

		for _, node := range candidateNodes(doc) {
			recipe := recipeFromNode(node, sourceURL)
			// 標題與食材都要有才採用；清單頁常有只帶 name 的 Recipe 節點
			if recipe != nil && recipe.Title != "" && len(recipe.Ingredients) > 0 {
				return recipe
			}
		}
	}

	return &common.ScrapedRecipe{
		Ingredients: []string{},
		Steps:       []string{},
		SourceURL:   sourceURL,
	}
}

// candidateNodes 展開 JSON-LD 文件為候選節點
// 頂層可以是單一物件、陣列，或帶 @graph 的容器
func candidateNodes(doc interface{}) []map[string]interface{} {
	var nodes []map[string]interface{}

	var collect func(v interface{})
	collect = func(v interface{}) {
		switch t := v.(type) {
		case map[string]interface{}:
			nodes = append(nodes, t)
			if graph, ok := t["@graph"].([]interface{}); ok {
				for _, item := range graph {
					if node, ok := item.(map[string]interface{}); ok {
						nodes = append(nodes, node)
					}
				}
			}
		case []interface{}:
			for _, item := range t {
				collect(item)
			}
		}
	}
	collect(doc)

	return nodes
}

// recipeFromNode 若節點為 Recipe 型別則取出欄位，否則回傳 nil
func recipeFromNode(node map[string]interface{}, sourceURL string) *common.ScrapedRecipe {
	if !isRecipeType(node["@type"]) {
		return nil
	}

	recipe := &common.ScrapedRecipe{
		Ingredients: []string{},
		Steps:       []string{},
		SourceURL:   sourceURL,
	}

	if title, ok := node["name"].(string); ok && title != "" {
		recipe.Title = strings.TrimSpace(title)
	} else if headline, ok := node["headline"].(string); ok {
		recipe.Title = strings.TrimSpace(headline)
	}

	recipe.Ingredients = stringList(node["recipeIngredient"])
	recipe.Steps = instructionList(node["recipeInstructions"])
	recipe.ImageURL = imageURL(node["image"])

	return recipe
}

// isRecipeType 檢查 @type 是否為 Recipe（字串或型別陣列）
func isRecipeType(v interface{}) bool {
	switch t := v.(type) {
	case string:
		return t == "Recipe"
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

// stringList 取出字串陣列；元素可以是字串或帶 text 欄位的物件
func stringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				result = append(result, s)
			}
		case map[string]interface{}:
			if text, ok := t["text"].(string); ok {
				if s := strings.TrimSpace(text); s != "" {
					result = append(result, s)
				}
			}
		}
	}
	return result
}

// instructionList 取出步驟
// 字串：以空白行切段並過濾過短段落；陣列：字串或 HowToStep 物件
func instructionList(v interface{}) []string {
	switch t := v.(type) {
	case string:
		parts := blankLinePattern.Split(t, -1)
		steps := make([]string, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if len(part) > 10 {
				steps = append(steps, part)
			}
		}
		return steps
	case []interface{}:
		return stringList(t)
	}
	return []string{}
}

// imageURL 取出圖片網址（字串、陣列或帶 url 欄位的物件）
func imageURL(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []interface{}:
		if len(t) > 0 {
			return imageURL(t[0])
		}
	case map[string]interface{}:
		if url, ok := t["url"].(string); ok {
			return url
		}
	}
	return ""
}
