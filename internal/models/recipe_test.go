package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeDecodesNumericAndStringIDs(t *testing.T) {
	var search Recipe
	require.NoError(t, json.Unmarshal([]byte(`{"id": 716429, "title": "Pasta"}`), &search))
	assert.Equal(t, RecipeID("716429"), search.ID)

	var saved Recipe
	require.NoError(t, json.Unmarshal([]byte(`{"_id": "65f0c1", "id": "716429", "title": "Pasta"}`), &saved))
	assert.Equal(t, "65f0c1", saved.FavoriteID)
	assert.Equal(t, "65f0c1", saved.Key())
	assert.True(t, SameRecipe(search, saved))
}

func TestRecipeIDMarshalKeepsNumbers(t *testing.T) {
	data, err := json.Marshal(Recipe{ID: "42", Title: "Soup"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":42`)

	data, err = json.Marshal(Recipe{ID: "abc", Title: "Soup"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":"abc"`)

	for _, id := range []RecipeID{"007", "+5", "-0"} {
		data, err = json.Marshal(Recipe{ID: id, Title: "Soup"})
		require.NoError(t, err, "id %q", id)
		assert.True(t, json.Valid(data), "id %q gave %s", id, data)
		assert.Contains(t, string(data), `"id":"`+string(id)+`"`)
	}

	data, err = json.Marshal(Recipe{Title: "Soup"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"id"`)
}

func TestRecipeKeepsIDWireForm(t *testing.T) {
	for _, body := range []string{
		`{"id":"123","title":"Soup"}`,
		`{"id":123,"title":"Soup"}`,
		`{"id":"007","title":"Soup"}`,
	} {
		var r Recipe
		require.NoError(t, json.Unmarshal([]byte(body), &r))

		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.JSONEq(t, body, string(data))
	}

	var inList []Recipe
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"9","title":"Stew"}]`), &inList))
	data, err := json.Marshal(struct {
		RecipeData Recipe `json:"recipeData"`
	}{inList[0].WithDefaults()})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":"9"`)
}

func TestIngredientsAcceptObjects(t *testing.T) {
	var r Recipe
	body := `{"title": "Salad", "ingredients": ["tomato", {"name": "basil"}, {"original": "2 cups rice"}, 7]}`
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	assert.Equal(t, Ingredients{"tomato", "basil", "2 cups rice"}, r.Ingredients)
}

func TestWithDefaults(t *testing.T) {
	r := Recipe{Title: "Bare"}.WithDefaults()

	assert.Equal(t, PlaceholderSummary, r.Summary)
	assert.Equal(t, PlaceholderImage, r.Image)
	assert.Equal(t, PlaceholderSourceURL, r.SourceURL)
	assert.NotNil(t, r.Ingredients)
	assert.Equal(t, 0.0, r.Rating())

	rating := 4.5
	kept := Recipe{Title: "Full", Summary: "tasty", Image: "x.png", SourceURL: "http://s", AverageRating: &rating}.WithDefaults()
	assert.Equal(t, "tasty", kept.Summary)
	assert.Equal(t, "x.png", kept.Image)
	assert.Equal(t, 4.5, kept.Rating())
}

func TestSameRecipePrefersIDs(t *testing.T) {
	a := Recipe{ID: "1", Title: "Curry"}
	b := Recipe{ID: "2", Title: "Curry"}
	assert.False(t, SameRecipe(a, b), "same title, different ids")

	assert.True(t, SameRecipe(Recipe{Title: "Curry"}, b), "title fallback when one side has no id")
	assert.False(t, SameRecipe(Recipe{}, Recipe{}))
}
