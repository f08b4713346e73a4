package views

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipefinder/internal/models"
)

func TestRatingOutOfRangeIssuesNoCall(t *testing.T) {
	fake := newFakeAPI()
	card := NewCard(recipe("1", "Stew"), FromFavorites, true)

	for _, bad := range []int{0, 6, -3, 100} {
		err := card.SubmitRating(context.Background(), fake, bad)
		assert.ErrorIs(t, err, models.ErrRatingOutOfRange)
	}
	assert.Empty(t, fake.ratings)
	assert.Equal(t, models.ErrRatingOutOfRange.Error(), card.Error)
}

func TestRatingPatchesAverageWithoutReload(t *testing.T) {
	fake := newFakeAPI()
	avg := 4.25
	fake.rateResult = &models.RatingResult{AverageRating: &avg}

	favorites := NewFavorites(newEnv(fake, &fakeSession{token: "tok"}))
	favorites.Items = []models.Recipe{{FavoriteID: "f1", Title: "Stew"}}

	card := favorites.Cards()[0]
	require.NoError(t, card.SubmitRating(context.Background(), fake, 5))
	assert.Equal(t, 5, fake.ratings["f1"], "favorites are rated by their server id")
	assert.Equal(t, 4.25, card.Recipe.Rating())
	assert.Equal(t, MsgRatingSaved, card.Notice)

	assert.True(t, favorites.PatchRecipe(card.Recipe))
	assert.Equal(t, 4.25, favorites.Items[0].Rating())
	assert.Empty(t, fake.favoriteCalls, "nothing is refetched")
}

func TestRatingWithoutAverageKeepsOldValue(t *testing.T) {
	fake := newFakeAPI()
	fake.rateResult = &models.RatingResult{}
	old := 3.0
	card := NewCard(models.Recipe{ID: "1", Title: "Stew", AverageRating: &old}, FromDashboard, false)

	require.NoError(t, card.SubmitRating(context.Background(), fake, 2))
	assert.Equal(t, 3.0, card.Recipe.Rating())
}

func TestRatingFailureShowsError(t *testing.T) {
	fake := newFakeAPI()
	fake.rateErr = errors.New("boom")
	card := NewCard(recipe("1", "Stew"), FromFavorites, true)

	assert.Error(t, card.SubmitRating(context.Background(), fake, 3))
	assert.Equal(t, "boom", card.Error)
	assert.Empty(t, card.Notice)
}

func TestRatingNeedsAnID(t *testing.T) {
	fake := newFakeAPI()
	card := NewCard(models.Recipe{Title: "Nameless"}, FromFavorites, true)

	assert.ErrorIs(t, card.SubmitRating(context.Background(), fake, 3), models.ErrMissingRecipeID)
	assert.Empty(t, fake.ratings)
}

func TestReview(t *testing.T) {
	fake := newFakeAPI()
	card := NewCard(recipe("1", "Stew"), FromFavorites, true)

	assert.ErrorIs(t, card.SubmitReview(context.Background(), fake, "  "), models.ErrEmptyReview)
	assert.Empty(t, fake.reviews)

	require.NoError(t, card.SubmitReview(context.Background(), fake, " Hearty "))
	assert.Equal(t, "Hearty", fake.reviews["1"])
	assert.Equal(t, MsgReviewSaved, card.Notice)
}

func TestAffordanceByContext(t *testing.T) {
	r := recipe("1", "Stew")
	assert.Equal(t, AffordanceFavorite, NewCard(r, FromSearch, false).Affordance())
	assert.Equal(t, AffordanceAlreadyFavorited, NewCard(r, FromSearch, true).Affordance())
	assert.Equal(t, AffordanceRateReview, NewCard(r, FromFavorites, true).Affordance())
	assert.Equal(t, AffordanceRateReview, NewCard(r, FromDashboard, false).Affordance())
}
