package models

import (
	"errors"
)

// Session-related errors
var (
	// ErrNotAuthenticated is returned when an operation needs a session token and none is stored
	ErrNotAuthenticated = errors.New("not logged in")

	// ErrMissingCredentials is returned when email or password is empty
	ErrMissingCredentials = errors.New("please enter email and password")

	// ErrInvalidRegistration is returned when a registration form fails validation
	ErrInvalidRegistration = errors.New("invalid registration")

	// ErrNoToken is returned when the login response carries no access token
	ErrNoToken = errors.New("no authentication token found in server response")
)

// Recipe-related errors
var (
	// ErrEmptyIngredient is returned when a search is submitted without an ingredient
	ErrEmptyIngredient = errors.New("ingredient is required")

	// ErrRatingOutOfRange is returned when a rating is not between MinRating and MaxRating
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

	// ErrEmptyReview is returned when a review has no text
	ErrEmptyReview = errors.New("review text is required")

	// ErrMissingRecipeID is returned when a recipe action needs an id the recipe does not have
	ErrMissingRecipeID = errors.New("recipe has no id")

	// ErrAlreadyFavorite is returned when saving a recipe that is already a favorite
	ErrAlreadyFavorite = errors.New("recipe is already a favorite")

	// ErrUnfavoriteUnsupported is returned by unfavorite, which the server does not offer
	ErrUnfavoriteUnsupported = errors.New("unfavorite functionality is not implemented yet")
)

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)
