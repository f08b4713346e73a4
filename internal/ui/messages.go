package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"recipefinder/internal/models"
	"recipefinder/internal/session"
	"recipefinder/internal/views"
)

// Messages
type loginDoneMsg struct {
	auth *models.Auth
	err  error
}

type registerDoneMsg struct {
	err error
}

type randomDoneMsg struct {
	seq     int
	recipes []models.Recipe
	err     error
}

type searchDoneMsg struct {
	req     views.SearchRequest
	recipes []models.Recipe
	err     error
}

type preloadDoneMsg struct {
	seq     int
	recipes []models.Recipe
	err     error
}

type favoriteSavedMsg struct {
	recipe models.Recipe
	err    error
}

type favoritesPageMsg struct {
	req     views.PageRequest
	recipes []models.Recipe
	err     error
}

type ratedMsg struct {
	card   views.RecipeCard
	result *models.RatingResult
	err    error
}

type reviewedMsg struct {
	card views.RecipeCard
	err  error
}

type logoutDoneMsg struct {
	err error
}

type sessionMsg session.Event

// Commands
func doLogin(ctx context.Context, client views.RecipeAPI, creds models.Credentials) tea.Cmd {
	return func() tea.Msg {
		auth, err := client.Login(ctx, creds.Email, creds.Password)
		return loginDoneMsg{auth: auth, err: err}
	}
}

func doRegister(ctx context.Context, client views.RecipeAPI, reg models.Registration) tea.Cmd {
	return func() tea.Msg {
		return registerDoneMsg{err: client.Register(ctx, reg)}
	}
}

func fetchRandom(ctx context.Context, client views.RecipeAPI, seq int) tea.Cmd {
	return func() tea.Msg {
		recipes, err := client.Random(ctx)
		return randomDoneMsg{seq: seq, recipes: recipes, err: err}
	}
}

func fetchSearch(ctx context.Context, client views.RecipeAPI, req views.SearchRequest) tea.Cmd {
	return func() tea.Msg {
		recipes, err := client.Search(ctx, req.Ingredient)
		return searchDoneMsg{req: req, recipes: recipes, err: err}
	}
}

func fetchPreload(ctx context.Context, client views.RecipeAPI, seq int) tea.Cmd {
	return func() tea.Msg {
		recipes, err := client.Favorites(ctx, 0, 0)
		return preloadDoneMsg{seq: seq, recipes: recipes, err: err}
	}
}

func saveFavorite(ctx context.Context, client views.RecipeAPI, recipe models.Recipe) tea.Cmd {
	return func() tea.Msg {
		return favoriteSavedMsg{recipe: recipe, err: client.SaveFavorite(ctx, recipe)}
	}
}

func fetchFavoritesPage(ctx context.Context, client views.RecipeAPI, req views.PageRequest) tea.Cmd {
	return func() tea.Msg {
		recipes, err := client.Favorites(ctx, req.Page, req.Limit)
		return favoritesPageMsg{req: req, recipes: recipes, err: err}
	}
}

func submitRating(ctx context.Context, client views.RecipeAPI, card views.RecipeCard, rating int) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Rate(ctx, card.Recipe.Key(), rating)
		return ratedMsg{card: card, result: result, err: err}
	}
}

func submitReview(ctx context.Context, client views.RecipeAPI, card views.RecipeCard, text string) tea.Cmd {
	return func() tea.Msg {
		return reviewedMsg{card: card, err: client.Review(ctx, card.Recipe.Key(), text)}
	}
}

func doLogout(ctx context.Context, client views.RecipeAPI) tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: client.Logout(ctx)}
	}
}

// waitForSession turns the next session change into a message
func waitForSession(events <-chan session.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return sessionMsg(ev)
	}
}
