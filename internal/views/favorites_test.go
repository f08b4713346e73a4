package views

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipefinder/internal/models"
)

func TestShortPageStopsPaging(t *testing.T) {
	fake := newFakeAPI()
	fake.favoritePages[1] = recipes(5, "p1")
	fake.favoritePages[2] = recipes(2, "p2")
	f := NewFavorites(newEnv(fake, &fakeSession{token: "tok"}))

	loaded, err := f.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.True(t, f.HasMore)
	assert.Equal(t, 2, f.Page)

	loaded, err = f.LoadMore(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.False(t, f.HasMore, "2 < 5 means no more pages")
	assert.Len(t, f.Items, 7)

	loaded, err = f.LoadMore(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded)

	assert.Equal(t, []favoritesCall{{Page: 1, Limit: 5}, {Page: 2, Limit: 5}}, fake.favoriteCalls)
}

func TestEmptyPageStopsPaging(t *testing.T) {
	fake := newFakeAPI()
	f := NewFavorites(newEnv(fake, &fakeSession{token: "tok"}))

	require.NoError(t, f.LoadAll(context.Background()))
	assert.False(t, f.HasMore)
	assert.Len(t, fake.favoriteCalls, 1)
	assert.Equal(t, MsgNoFavorites, f.EmptyMessage())
}

func TestLoadAllFollowsPages(t *testing.T) {
	fake := newFakeAPI()
	fake.favoritePages[1] = recipes(5, "p1")
	fake.favoritePages[2] = recipes(5, "p2")
	f := NewFavorites(newEnv(fake, &fakeSession{token: "tok"}))

	require.NoError(t, f.LoadAll(context.Background()))
	assert.Len(t, f.Items, 10)
	assert.Len(t, fake.favoriteCalls, 3, "third page comes back empty")
	assert.Empty(t, f.EmptyMessage())
}

func TestLoadWhileLoadingIsSkipped(t *testing.T) {
	f := NewFavorites(newEnv(newFakeAPI(), &fakeSession{token: "tok"}))

	_, ok := f.BeginLoad()
	require.True(t, ok)
	_, ok = f.BeginLoad()
	assert.False(t, ok)
}

func TestFavoritesFailureKeepsPage(t *testing.T) {
	fake := newFakeAPI()
	fake.favoritesErr = errors.New("boom")
	f := NewFavorites(newEnv(fake, &fakeSession{token: "tok"}))

	_, err := f.LoadMore(context.Background())
	assert.Error(t, err)
	assert.Equal(t, MsgFavoritesFailed, f.Error)
	assert.Equal(t, 1, f.Page)
	assert.True(t, f.HasMore, "a failed page can be retried")
	assert.False(t, f.Loading)
}

func TestResetDropsInFlightPage(t *testing.T) {
	f := NewFavorites(newEnv(newFakeAPI(), &fakeSession{token: "tok"}))

	req, ok := f.BeginLoad()
	require.True(t, ok)
	f.Reset()

	assert.False(t, f.ApplyLoad(req, recipes(5, "old"), nil))
	assert.Empty(t, f.Items)
	assert.Equal(t, 1, f.Page)
}

func TestCancelKeepsLoadedPages(t *testing.T) {
	f := NewFavorites(newEnv(newFakeAPI(), &fakeSession{token: "tok"}))
	first, ok := f.BeginLoad()
	require.True(t, ok)
	require.True(t, f.ApplyLoad(first, recipes(5, "p1"), nil))

	second, ok := f.BeginLoad()
	require.True(t, ok)
	f.Cancel()

	assert.False(t, f.ApplyLoad(second, nil, context.Canceled))
	assert.Empty(t, f.Error)
	assert.Len(t, f.Items, 5)
	assert.Equal(t, 2, f.Page)

	again, ok := f.BeginLoad()
	require.True(t, ok, "the cancelled page can be asked for again")
	assert.Equal(t, 2, again.Page)
}

func TestUnfavoriteIsAStub(t *testing.T) {
	f := NewFavorites(newEnv(newFakeAPI(), &fakeSession{token: "tok"}))
	err := f.Unfavorite(recipe("1", "Omelette"))
	assert.ErrorIs(t, err, models.ErrUnfavoriteUnsupported)
	assert.Equal(t, models.ErrUnfavoriteUnsupported.Error(), f.Notice)
}

func TestFavoritesCardsOfferRating(t *testing.T) {
	fake := newFakeAPI()
	fake.favoritePages[1] = []models.Recipe{{FavoriteID: "f1", Title: "Stew"}}
	f := NewFavorites(newEnv(fake, &fakeSession{token: "tok"}))
	_, err := f.LoadMore(context.Background())
	require.NoError(t, err)

	cards := f.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, AffordanceRateReview, cards[0].Affordance())
	assert.Equal(t, 0.0, cards[0].Recipe.Rating())
}

func TestDefaultPageSize(t *testing.T) {
	f := NewFavorites(Env{API: newFakeAPI(), Session: &fakeSession{}})
	assert.Equal(t, DefaultFavoritesPage, f.Limit)
}
