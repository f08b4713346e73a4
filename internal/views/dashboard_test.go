package views

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipefinder/internal/models"
)

func TestDashboardLoadsRandomRecipes(t *testing.T) {
	fake := newFakeAPI()
	fake.random = recipes(3, "r")
	d := NewDashboard(newEnv(fake, &fakeSession{token: "tok"}))

	require.NoError(t, d.Load(context.Background()))
	assert.Len(t, d.Recipes, 3)
	assert.False(t, d.Loading)
	assert.Len(t, d.Cards(), 3)
	assert.Equal(t, AffordanceRateReview, d.Cards()[0].Affordance())
}

func TestDashboardLoadFailure(t *testing.T) {
	fake := newFakeAPI()
	fake.randomErr = errors.New("down")
	d := NewDashboard(newEnv(fake, &fakeSession{}))

	assert.Error(t, d.Load(context.Background()))
	assert.Equal(t, MsgRandomFailed, d.Error)
}

func TestDashboardDropsStaleCollection(t *testing.T) {
	d := NewDashboard(newEnv(newFakeAPI(), &fakeSession{}))
	first := d.BeginLoad()
	second := d.BeginLoad()

	assert.True(t, d.ApplyLoad(second, recipes(1, "new"), nil))
	assert.False(t, d.ApplyLoad(first, recipes(4, "old"), nil))
	assert.Len(t, d.Recipes, 1)
}

func TestDashboardCancelDropsCollectionInFlight(t *testing.T) {
	d := NewDashboard(newEnv(newFakeAPI(), &fakeSession{}))
	seq := d.BeginLoad()
	d.Cancel()

	assert.False(t, d.Loading)
	assert.False(t, d.ApplyLoad(seq, nil, context.Canceled))
	assert.Empty(t, d.Error)
}

func TestLogoutClearsSessionEvenIfServerFails(t *testing.T) {
	fake := newFakeAPI()
	fake.logoutErr = errors.New("server down")
	session := &fakeSession{token: "tok"}
	d := NewDashboard(newEnv(fake, session))
	require.True(t, d.Authenticated)

	route, err := d.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RouteHome, route)
	assert.False(t, session.Authenticated())
	assert.False(t, d.Authenticated)
	assert.Equal(t, 1, fake.logouts)
	assert.Equal(t, []string{"Search", "Login", "Register"}, []string{d.Nav()[0].Label, d.Nav()[1].Label, d.Nav()[2].Label})
}

func TestDashboardPatchRecipe(t *testing.T) {
	d := NewDashboard(newEnv(newFakeAPI(), &fakeSession{}))
	d.Recipes = []models.Recipe{recipe("1", "Stew")}

	avg := 2.0
	assert.True(t, d.PatchRecipe(models.Recipe{ID: "1", AverageRating: &avg}))
	assert.Equal(t, 2.0, d.Recipes[0].Rating())
	assert.False(t, d.PatchRecipe(models.Recipe{ID: "9"}))
}
