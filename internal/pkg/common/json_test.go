package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, ParseJSON(`{"name": "Stew"}`, &v))
	assert.Equal(t, "Stew", v["name"])

	assert.Error(t, ParseJSON(`{broken`, &v))
	// 合法 JSON 後面跟著多餘資料視為錯誤
	assert.Error(t, ParseJSON(`{"a": 1}{"b": 2}`, &v))
}

func TestParseJSONStrict(t *testing.T) {
	type target struct {
		Name string `json:"name"`
	}

	var v target
	require.NoError(t, ParseJSONStrict(`{"name": "x"}`, &v))
	assert.Error(t, ParseJSONStrict(`{"name": "x", "extra": 1}`, &v))
}

func TestQuoteJSONKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "unquoted keys get quoted",
			in:   `{name: "Stew", servings: 4}`,
			want: `{"name": "Stew", "servings": 4}`,
		},
		{
			name: "already quoted keys untouched",
			in:   `{"name": "Stew"}`,
			want: `{"name": "Stew"}`,
		},
		{
			name: "string values with colons untouched",
			in:   `{"url": "https://example.com"}`,
			want: `{"url": "https://example.com"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuoteJSONKeys(tt.in)
			assert.Equal(t, tt.want, got)

			var v map[string]interface{}
			assert.NoError(t, ParseJSON(got, &v))
		})
	}
}

func TestScrapedRecipeIsEmpty(t *testing.T) {
	assert.True(t, (&ScrapedRecipe{SourceURL: "https://example.com"}).IsEmpty())
	assert.False(t, (&ScrapedRecipe{Title: "Stew"}).IsEmpty())
	assert.False(t, (&ScrapedRecipe{Ingredients: []string{"1 cup rice"}}).IsEmpty())
}
