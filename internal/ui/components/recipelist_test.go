package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recipefinder/internal/models"
	"recipefinder/internal/views"
)

func cards(titles ...string) []views.RecipeCard {
	out := make([]views.RecipeCard, len(titles))
	for i, title := range titles {
		out[i] = views.NewCard(models.Recipe{ID: models.RecipeID(title), Title: title}, views.FromFavorites, true)
	}
	return out
}

func TestSetCardsSelectsFirst(t *testing.T) {
	m := NewRecipeListModel("Favorites", 40, 20)
	m.SetCards(cards("Stew", "Soup"))

	if assert.NotNil(t, m.Selected) {
		assert.Equal(t, "Stew", m.Selected.Recipe.Title)
	}
	assert.False(t, m.AtBottom())

	m.List.Select(1)
	assert.True(t, m.AtBottom())
}

func TestSetCardsClampsCursor(t *testing.T) {
	m := NewRecipeListModel("Search", 40, 20)
	m.SetCards(cards("a", "b", "c"))
	m.List.Select(2)

	m.SetCards(cards("only"))
	if assert.NotNil(t, m.Selected) {
		assert.Equal(t, "only", m.Selected.Recipe.Title)
	}

	m.SetCards(nil)
	assert.Nil(t, m.Selected)
	assert.False(t, m.AtBottom())
}

func TestItemDescriptions(t *testing.T) {
	fav := RecipeItem{Card: views.NewCard(models.Recipe{Title: "Stew"}, views.FromSearch, true)}
	assert.Contains(t, fav.Description(), views.MsgAlreadyFavorited)

	plain := RecipeItem{Card: views.NewCard(models.Recipe{Title: "Stew", Summary: "Rich. Warming."}, views.FromSearch, false)}
	assert.Equal(t, "Rich.", plain.Description())

	rated := RecipeItem{Card: views.NewCard(models.Recipe{Title: "Stew"}, views.FromDashboard, false)}
	assert.Contains(t, rated.Description(), "Rating 0.0")
}
