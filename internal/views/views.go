// Package views holds the state behind each screen of the client: form
// fields, loading flags, fetched lists and the error text to show. The
// state is independent of how it is drawn, so the CLI commands and the
// TUI drive the same types.
//
// Each fetch is split into a Begin step that validates input and marks
// the view as loading, and an Apply step that folds the response in. The
// synchronous helpers (Submit, Load, LoadMore...) simply chain the two
// around the API call. Apply ignores responses to requests that have
// since been superseded.
package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"recipefinder/internal/api"
	"recipefinder/internal/models"
)

// ErrBusy is returned when a request is started while the previous one of
// the same kind is still in flight
var ErrBusy = errors.New("request already in progress")

// RecipeAPI is the subset of the API client the views call
type RecipeAPI interface {
	Login(ctx context.Context, email, password string) (*models.Auth, error)
	Register(ctx context.Context, reg models.Registration) error
	Logout(ctx context.Context) error
	Search(ctx context.Context, ingredient string) ([]models.Recipe, error)
	Random(ctx context.Context) ([]models.Recipe, error)
	Favorites(ctx context.Context, page, limit int) ([]models.Recipe, error)
	SaveFavorite(ctx context.Context, recipe models.Recipe) error
	Rate(ctx context.Context, id string, rating int) (*models.RatingResult, error)
	Review(ctx context.Context, id string, review string) error
}

// Session is the authentication state the views read and update
type Session interface {
	Authenticated() bool
	Login(token string) error
	Logout() error
}

// Env bundles what every view needs
type Env struct {
	API      RecipeAPI
	Session  Session
	Logger   *zap.Logger
	PageSize int
}

func (e Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Route names a screen to navigate to
type Route string

const (
	RouteHome      Route = "home"
	RouteLogin     Route = "login"
	RouteRegister  Route = "register"
	RouteDashboard Route = "dashboard"
	RouteSearch    Route = "search"
	RouteFavorites Route = "favorites"
)

// Link is one navigation entry
type Link struct {
	Label string
	Route Route
}

// NavLinks returns the navigation entries for the given session state
func NavLinks(authenticated bool) []Link {
	links := []Link{{Label: "Search", Route: RouteSearch}}
	if authenticated {
		return append(links,
			Link{Label: "Favorites", Route: RouteFavorites},
			Link{Label: "Logout", Route: RouteHome},
		)
	}
	return append(links,
		Link{Label: "Login", Route: RouteLogin},
		Link{Label: "Register", Route: RouteRegister},
	)
}

var validate = validator.New()

// errorText turns any error into the plain text shown to the user
func errorText(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// validationText renders validator errors as a single sentence
func validationText(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errorText(err)
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", field))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email address", field))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(parts, ", ")
}
