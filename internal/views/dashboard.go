package views

import (
	"context"

	"go.uber.org/zap"

	"recipefinder/internal/models"
)

// MsgRandomFailed is shown when the random recipes cannot be fetched
const MsgRandomFailed = "Error fetching recipes"

// Dashboard shows a random selection of recipes and the navigation
type Dashboard struct {
	Recipes       []models.Recipe
	Authenticated bool
	Loading       bool
	Error         string

	env Env
	seq int
}

// NewDashboard creates the dashboard, reading the session state once
func NewDashboard(env Env) *Dashboard {
	d := &Dashboard{env: env}
	d.Refresh()
	return d
}

// Refresh re-reads the session state
func (d *Dashboard) Refresh() {
	d.Authenticated = d.env.Session.Authenticated()
}

// Nav returns the navigation for the current session
func (d *Dashboard) Nav() []Link {
	return NavLinks(d.Authenticated)
}

// BeginLoad starts fetching a random collection, superseding older ones
func (d *Dashboard) BeginLoad() int {
	d.seq++
	d.Loading = true
	return d.seq
}

// Cancel abandons the collection in flight; its result will be ignored
func (d *Dashboard) Cancel() {
	d.seq++
	d.Loading = false
}

// ApplyLoad stores the random collection unless a newer one was requested
func (d *Dashboard) ApplyLoad(seq int, recipes []models.Recipe, err error) bool {
	if seq != d.seq {
		return false
	}
	d.Loading = false
	if err != nil {
		d.env.logger().Warn("error fetching random recipes", zap.Error(err))
		d.Error = MsgRandomFailed
		return true
	}
	d.Recipes = recipes
	d.Error = ""
	return true
}

// Load fetches a random collection synchronously
func (d *Dashboard) Load(ctx context.Context) error {
	seq := d.BeginLoad()
	recipes, err := d.env.API.Random(ctx)
	d.ApplyLoad(seq, recipes, err)
	return err
}

// Logout tells the server and clears the local session
func (d *Dashboard) Logout(ctx context.Context) (Route, error) {
	return d.FinishLogout(d.env.API.Logout(ctx))
}

// FinishLogout clears the local session after the server call. The local
// token is cleared even when the server call failed.
func (d *Dashboard) FinishLogout(serverErr error) (Route, error) {
	if serverErr != nil {
		d.env.logger().Warn("server logout failed", zap.Error(serverErr))
	}
	if err := d.env.Session.Logout(); err != nil {
		d.Error = errorText(err)
		return RouteDashboard, err
	}
	d.Authenticated = false
	return RouteHome, nil
}

// PatchRecipe updates the stored copy of a recipe after a card change
func (d *Dashboard) PatchRecipe(recipe models.Recipe) bool {
	return patchRecipe(d.Recipes, recipe)
}

// Cards returns one rate/review card per recipe
func (d *Dashboard) Cards() []RecipeCard {
	cards := make([]RecipeCard, 0, len(d.Recipes))
	for _, recipe := range d.Recipes {
		cards = append(cards, NewCard(recipe, FromDashboard, false))
	}
	return cards
}
