package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wrapScript(body string) string {
	return `<html><head><script type="application/ld+json">` + body + `</script></head><body></body></html>`
}

func TestExtractRecipeFromHTMLSimpleObject(t *testing.T) {
	html := wrapScript(`{
		"@context": "https://schema.org",
		"@type": "Recipe",
		"name": "Foil Packet Potatoes",
		"image": "https://example.com/potatoes.jpg",
		"recipeIngredient": ["4 potatoes", "2 tbsp butter"],
		"recipeInstructions": [
			{"@type": "HowToStep", "text": "Slice the potatoes."},
			{"@type": "HowToStep", "text": "Wrap in foil and grill."}
		]
	}`)

	recipe := ExtractRecipeFromHTML(html, "https://example.com/recipe")
	require.NotNil(t, recipe)
	assert.Equal(t, "Foil Packet Potatoes", recipe.Title)
	assert.Equal(t, []string{"4 potatoes", "2 tbsp butter"}, recipe.Ingredients)
	assert.Equal(t, []string{"Slice the potatoes.", "Wrap in foil and grill."}, recipe.Steps)
	assert.Equal(t, "https://example.com/potatoes.jpg", recipe.ImageURL)
	assert.Equal(t, "https://example.com/recipe", recipe.SourceURL)
	assert.False(t, recipe.IsEmpty())
}

func TestExtractRecipeFromHTMLGraph(t *testing.T) {
	html := wrapScript(`{
		"@context": "https://schema.org",
		"@graph": [
			{"@type": "WebPage", "name": "Some page"},
			{
				"@type": "Recipe",
				"name": "Dutch Oven Stew",
				"recipeIngredient": ["1 lb beef", "3 carrots"],
				"recipeInstructions": [{"@type": "HowToStep", "text": "Brown the beef."}]
			}
		]
	}`)

	recipe := ExtractRecipeFromHTML(html, "https://example.com/stew")
	assert.Equal(t, "Dutch Oven Stew", recipe.Title)
	assert.Equal(t, []string{"1 lb beef", "3 carrots"}, recipe.Ingredients)
}

func TestExtractRecipeFromHTMLTopLevelArray(t *testing.T) {
	html := wrapScript(`[
		{"@type": "Organization", "name": "Example Kitchen"},
		{"@type": ["Thing", "Recipe"], "name": "Trail Pancakes", "recipeIngredient": ["1 cup mix"]}
	]`)

	recipe := ExtractRecipeFromHTML(html, "https://example.com/pancakes")
	assert.Equal(t, "Trail Pancakes", recipe.Title)
	assert.Equal(t, []string{"1 cup mix"}, recipe.Ingredients)
}

func TestExtractRecipeFromHTMLStringInstructions(t *testing.T) {
	html := wrapScript(`{
		"@type": "Recipe",
		"name": "Cowboy Coffee",
		"recipeIngredient": ["4 cups water", "1/2 cup ground coffee"],
		"recipeInstructions": "Bring the water to a rolling boil.\n\nok\n\nStir in the grounds and let them settle."
	}`)

	recipe := ExtractRecipeFromHTML(html, "https://example.com/coffee")
	// 空白行切段，過短的段落過濾掉
	assert.Equal(t, []string{
		"Bring the water to a rolling boil.",
		"Stir in the grounds and let them settle.",
	}, recipe.Steps)
}

func TestExtractRecipeFromHTMLSkipsMalformedBlock(t *testing.T) {
	html := `<html><head>` +
		`<script type="application/ld+json">{not valid json at all]</script>` +
		`<script type="application/ld+json">{"@type": "Recipe", "name": "Backup Recipe", "recipeIngredient": ["1 egg"]}</script>` +
		`</head></html>`

	recipe := ExtractRecipeFromHTML(html, "https://example.com/x")
	assert.Equal(t, "Backup Recipe", recipe.Title)
}

func TestExtractRecipeFromHTMLRepairsUnquotedKeys(t *testing.T) {
	html := wrapScript(`{"@type": "Recipe", name: "Hand Written", recipeIngredient: ["2 cups oats"]}`)

	recipe := ExtractRecipeFromHTML(html, "https://example.com/oats")
	assert.Equal(t, "Hand Written", recipe.Title)
	assert.Equal(t, []string{"2 cups oats"}, recipe.Ingredients)
}

func TestExtractRecipeFromHTMLPlaceholder(t *testing.T) {
	html := `<html><body><h1>Not a recipe page</h1></body></html>`

	recipe := ExtractRecipeFromHTML(html, "https://example.com/blog")
	require.NotNil(t, recipe)
	assert.True(t, recipe.IsEmpty())
	assert.Equal(t, "", recipe.Title)
	assert.NotNil(t, recipe.Ingredients)
	assert.NotNil(t, recipe.Steps)
	assert.Empty(t, recipe.Ingredients)
	assert.Empty(t, recipe.Steps)
	assert.Equal(t, "https://example.com/blog", recipe.SourceURL)
}

func TestExtractRecipeFromHTMLSkipsTitleOnlyStub(t *testing.T) {
	// 列表輪播的 JSON-LD 常帶只有 name 的 Recipe 節點，要略過找完整的
	html := `<html><head>` +
		`<script type="application/ld+json">{"@type": "Recipe", "name": "Title Only Card"}</script>` +
		`<script type="application/ld+json">{
			"@type": "Recipe",
			"name": "Full Dinner",
			"recipeIngredient": ["2 cups rice", "1 lb sausage"],
			"recipeInstructions": [{"@type": "HowToStep", "text": "Simmer everything together."}]
		}</script>` +
		`</head></html>`

	recipe := ExtractRecipeFromHTML(html, "https://example.com/dinner")
	assert.Equal(t, "Full Dinner", recipe.Title)
	assert.Equal(t, []string{"2 cups rice", "1 lb sausage"}, recipe.Ingredients)
}

func TestExtractRecipeFromHTMLSkipsIngredientOnlyNode(t *testing.T) {
	html := wrapScript(`{"@type": "Recipe", "recipeIngredient": ["2 cups mystery"]}`)

	recipe := ExtractRecipeFromHTML(html, "https://example.com/x")
	assert.True(t, recipe.IsEmpty())
	assert.Equal(t, "", recipe.Title)
}

func TestExtractRecipeFromHTMLIgnoresNonRecipeTypes(t *testing.T) {
	html := wrapScript(`{"@type": "Article", "name": "Ten camping tips"}`)

	recipe := ExtractRecipeFromHTML(html, "https://example.com/tips")
	assert.True(t, recipe.IsEmpty())
}

func TestExtractRecipeFromHTMLImageVariants(t *testing.T) {
	arrayImage := wrapScript(`{"@type": "Recipe", "name": "A", "recipeIngredient": ["1 cup milk"], "image": ["https://example.com/1.jpg", "https://example.com/2.jpg"]}`)
	objectImage := wrapScript(`{"@type": "Recipe", "name": "B", "recipeIngredient": ["1 cup milk"], "image": {"@type": "ImageObject", "url": "https://example.com/obj.jpg"}}`)

	assert.Equal(t, "https://example.com/1.jpg", ExtractRecipeFromHTML(arrayImage, "u").ImageURL)
	assert.Equal(t, "https://example.com/obj.jpg", ExtractRecipeFromHTML(objectImage, "u").ImageURL)
}
