package views

import (
	"context"
	"strings"

	"recipefinder/internal/models"
)

// CardContext tells a card which screen it is shown on
type CardContext string

const (
	FromSearch    CardContext = "search"
	FromFavorites CardContext = "favorites"
	FromDashboard CardContext = "dashboard"
)

// Affordance is the action a card offers
type Affordance int

const (
	AffordanceFavorite Affordance = iota
	AffordanceAlreadyFavorited
	AffordanceRateReview
)

// Card messages
const (
	MsgAlreadyFavorited = "Already added to favorite"
	MsgRatingSaved      = "Rating submitted"
	MsgReviewSaved      = "Review submitted"
)

// RecipeCard presents one recipe and its favorite or rate/review actions
type RecipeCard struct {
	Recipe     models.Recipe
	From       CardContext
	IsFavorite bool
	Error      string
	Notice     string
}

// NewCard builds a card, filling missing display fields with placeholders
func NewCard(recipe models.Recipe, from CardContext, isFavorite bool) RecipeCard {
	return RecipeCard{
		Recipe:     recipe.WithDefaults(),
		From:       from,
		IsFavorite: isFavorite,
	}
}

// Affordance returns the action the card offers
func (c RecipeCard) Affordance() Affordance {
	if c.From != FromSearch {
		return AffordanceRateReview
	}
	if c.IsFavorite {
		return AffordanceAlreadyFavorited
	}
	return AffordanceFavorite
}

// BeginRating checks the rating before anything is sent
func (c *RecipeCard) BeginRating(rating int) error {
	c.Notice = ""
	if rating < models.MinRating || rating > models.MaxRating {
		c.Error = models.ErrRatingOutOfRange.Error()
		return models.ErrRatingOutOfRange
	}
	if c.Recipe.Key() == "" {
		c.Error = models.ErrMissingRecipeID.Error()
		return models.ErrMissingRecipeID
	}
	c.Error = ""
	return nil
}

// ApplyRating patches the card's average rating from the server's answer
func (c *RecipeCard) ApplyRating(result *models.RatingResult, err error) error {
	if err != nil {
		c.Error = errorText(err)
		return err
	}
	if result != nil && result.AverageRating != nil {
		avg := *result.AverageRating
		c.Recipe.AverageRating = &avg
	}
	c.Notice = MsgRatingSaved
	return nil
}

// SubmitRating sends a 1-5 rating for the card's recipe
func (c *RecipeCard) SubmitRating(ctx context.Context, client RecipeAPI, rating int) error {
	if err := c.BeginRating(rating); err != nil {
		return err
	}
	result, err := client.Rate(ctx, c.Recipe.Key(), rating)
	return c.ApplyRating(result, err)
}

// BeginReview checks the review text before anything is sent
func (c *RecipeCard) BeginReview(text string) error {
	c.Notice = ""
	if strings.TrimSpace(text) == "" {
		c.Error = models.ErrEmptyReview.Error()
		return models.ErrEmptyReview
	}
	if c.Recipe.Key() == "" {
		c.Error = models.ErrMissingRecipeID.Error()
		return models.ErrMissingRecipeID
	}
	c.Error = ""
	return nil
}

// ApplyReview records the outcome of a review submission
func (c *RecipeCard) ApplyReview(err error) error {
	if err != nil {
		c.Error = errorText(err)
		return err
	}
	c.Notice = MsgReviewSaved
	return nil
}

// SubmitReview sends a free-text review for the card's recipe
func (c *RecipeCard) SubmitReview(ctx context.Context, client RecipeAPI, text string) error {
	if err := c.BeginReview(text); err != nil {
		return err
	}
	return c.ApplyReview(client.Review(ctx, c.Recipe.Key(), strings.TrimSpace(text)))
}

// patchRecipe replaces the entry in list matching updated
func patchRecipe(list []models.Recipe, updated models.Recipe) bool {
	for i := range list {
		if models.SameRecipe(list[i], updated) {
			list[i].AverageRating = updated.AverageRating
			return true
		}
	}
	return false
}
