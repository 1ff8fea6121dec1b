package grocery

// MergeIngredients 將多份食譜的食材清單折疊為採買清單
// 以 Normalized 鍵分組，輸出順序為各食材首次出現的順序
func MergeIngredients(lists []RecipeIngredients) []MergedIngredient {
	entries := make(map[string]*MergedIngredient)
	order := make([]string, 0)

	for _, list := range lists {
		ref := RecipeRef{ID: list.RecipeID, Title: list.RecipeTitle}

		for _, line := range list.Ingredients {
			parsed := ParseIngredient(line)
			if parsed.Normalized == "" {
				continue
			}

			entry, exists := entries[parsed.Normalized]
			if !exists {
				entry = &MergedIngredient{
					Name:    parsed.Name,
					Recipes: []RecipeRef{ref},
				}
				entries[parsed.Normalized] = entry
				order = append(order, parsed.Normalized)
			} else if !containsRecipe(entry.Recipes, ref.ID) {
				entry.Recipes = append(entry.Recipes, ref)
			}

			if parsed.Amount != "" {
				entry.Amounts = append(entry.Amounts, parsed.Amount)
			}
		}
	}

	merged := make([]MergedIngredient, 0, len(order))
	for _, key := range order {
		entry := entries[key]
		if len(entry.Amounts) > 0 {
			entry.CombinedAmount = CombineAmounts(entry.Amounts)
		}
		merged = append(merged, *entry)
	}
	return merged
}

// containsRecipe 檢查食譜引用是否已存在（以 ID 判斷）
func containsRecipe(refs []RecipeRef, id string) bool {
	for _, ref := range refs {
		if ref.ID == id {
			return true
		}
	}
	return false
}
