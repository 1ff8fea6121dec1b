package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// 行內出現這些單位字眼時視為可能的食材行
var unitKeywords = []string{
	"cup", "cups", "tbsp", "tablespoon", "tsp", "teaspoon",
	"oz", "ounce", "lb", "pound", "gram", "kg", "ml", "liter", "litre",
	"pinch", "dash", "clove", "slice", "can", "package", "stick", "bunch",
}

// 步驟句常見的開頭動詞，用來排除說明文字
var instructionOpeners = []string{
	"preheat", "mix", "stir", "bake", "cook", "heat", "add", "combine",
	"place", "remove", "serve", "pour", "whisk", "bring", "let", "cover",
	"drain", "season", "transfer", "repeat",
}

// ParseIngredientsFromContent 從頁面可見文字啟發式找出食材行
// 只在結構化資料（JSON-LD）不可用時作為備援，不會自動接在 ScrapeRecipe 後面
func ParseIngredientsFromContent(html string) []string {
	text := visibleText(html)

	lines := strings.Split(text, "\n")
	ingredients := make([]string, 0)
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if looksLikeIngredient(line) {
			ingredients = append(ingredients, line)
		}
	}
	return ingredients
}

// visibleText 去除雜訊標籤後取出頁面可見文字
func visibleText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// 連最寬鬆的解析都失敗時，退回原始文字掃描
		return html
	}

	doc.Find("script, style, nav, header, footer, iframe, noscript").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return doc.Text()
	}

	// li 與 p 之間補換行，避免清單項目黏成同一行
	var sb strings.Builder
	body.Find("li, p, h1, h2, h3").Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	})
	if sb.Len() == 0 {
		return body.Text()
	}
	return sb.String()
}

// looksLikeIngredient 判斷一行文字是否像食材
// 長度 5–200、含數字或單位字眼、不是標題也不是步驟句
func looksLikeIngredient(line string) bool {
	if len(line) < 5 || len(line) > 200 {
		return false
	}

	lower := strings.ToLower(line)

	// 標題：以冒號結尾或全大寫
	if strings.HasSuffix(line, ":") || (line == strings.ToUpper(line) && line != lower) {
		return false
	}

	// 步驟句開頭動詞
	firstWord := lower
	if idx := strings.IndexByte(lower, ' '); idx > 0 {
		firstWord = lower[:idx]
	}
	for _, opener := range instructionOpeners {
		if firstWord == opener {
			return false
		}
	}

	// 需要數字或單位字眼
	if strings.ContainsAny(line, "0123456789") {
		return true
	}
	for _, unit := range unitKeywords {
		if containsWord(lower, unit) {
			return true
		}
	}
	return false
}

// containsWord 檢查是否包含完整單字（避免 "cup" 匹配到 "cupboard"）
func containsWord(s, word string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		leftOK := start == 0 || !isLetter(s[start-1])
		rightOK := end == len(s) || !isLetter(s[end])
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
