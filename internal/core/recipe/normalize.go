package recipe

import (
	"regexp"
	"strings"
)

var (
	// 食材行開頭的項目符號
	bulletPrefix = regexp.MustCompile(`^[-*•]\s*`)
	// 步驟行開頭的項目符號或編號（如 "1."、"2)"）
	stepPrefix = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s*`)
)

// NormalizeIngredients 將自由文字的食材區塊整理為乾淨的行陣列
// 去除項目符號、壓縮空白、丟棄空行；對自身輸出為恆等
func NormalizeIngredients(text string) []string {
	return normalizeLines(text, bulletPrefix)
}

// NormalizeSteps 將自由文字的步驟區塊整理為乾淨的行陣列
func NormalizeSteps(text string) []string {
	return normalizeLines(text, stepPrefix)
}

func normalizeLines(text string, prefix *regexp.Regexp) []string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = prefix.ReplaceAllString(line, "")
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		cleaned = append(cleaned, line)
	}
	return cleaned
}
