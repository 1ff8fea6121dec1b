package grocery

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// 份量樣式：開頭的數字（含小數點、分數），後面可接一個單位字
	amountPattern = regexp.MustCompile(`(?i)^(\d[\d./]*(?:\s+(?:cups?|tbsps?|tablespoons?|tsps?|teaspoons?|oz|ounces?|lbs?|pounds?|grams?|g|kgs?|ml|l|liters?|litres?|cans?|packs?|packages?|cloves?|slices?|pieces?|pinch(?:es)?|dash(?:es)?|sticks?|bunch(?:es)?|bags?|bottles?|handfuls?)\.?)?)\s+(.+)$`)

	// 合併鍵只保留文字與空白
	nonWordPattern = regexp.MustCompile(`[^\w\s]`)
)

// ParseIngredient 解析單行食材文字，切出份量與名稱
// 無法匹配時整行視為名稱，Amount 為空
func ParseIngredient(line string) ParsedIngredient {
	trimmed := strings.TrimSpace(line)

	parsed := ParsedIngredient{
		Original: line,
		Name:     trimmed,
	}

	if m := amountPattern.FindStringSubmatch(trimmed); m != nil {
		parsed.Amount = strings.TrimSpace(m[1])
		parsed.Name = strings.TrimSpace(m[2])
	}

	parsed.Normalized = NormalizeKey(parsed.Name)
	return parsed
}

// NormalizeKey 產生合併用鍵：小寫、去標點、壓縮空白
// 純標點差異會合併（已知的啟發式限制，同義詞不處理）
func NormalizeKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = nonWordPattern.ReplaceAllString(key, "")
	return strings.Join(strings.Fields(key), " ")
}

// CombineAmounts 合併多個份量字串
// 全為純數字時加總並沿用第一個份量的單位；否則以 " + " 串接
// 不檢查單位是否一致
func CombineAmounts(amounts []string) string {
	switch len(amounts) {
	case 0:
		return ""
	case 1:
		return amounts[0]
	}

	total := 0.0
	for _, amount := range amounts {
		value, ok := numericValue(amount)
		if !ok {
			return strings.Join(amounts, " + ")
		}
		total += value
	}

	sum := strconv.FormatFloat(total, 'f', -1, 64)
	if unit := unitSuffix(amounts[0]); unit != "" {
		return sum + " " + unit
	}
	return sum
}

// numericValue 去除非數字字元後嘗試解析為數字
// 含分數（斜線）的份量不視為純數字
func numericValue(amount string) (float64, bool) {
	if strings.Contains(amount, "/") {
		return 0, false
	}

	var b strings.Builder
	for _, r := range amount {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	stripped := b.String()
	if stripped == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// unitSuffix 從份量字串取出單位片段（去除數字、小數點、斜線）
func unitSuffix(amount string) string {
	var b strings.Builder
	for _, r := range amount {
		if (r >= '0' && r <= '9') || r == '.' || r == '/' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
