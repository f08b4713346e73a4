package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"recipefinder/internal/models"
)

// maxEnvelopeDepth bounds how many {"data": ...} wrappers are peeled off
const maxEnvelopeDepth = 3

// Search returns recipes matching an ingredient
func (c *Client) Search(ctx context.Context, ingredient string) ([]models.Recipe, error) {
	query := url.Values{}
	query.Set("ingredient", ingredient)

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/recipes/search", query, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	return decodeRecipes(raw)
}

// Random returns a collection of random recipes for the dashboard
func (c *Client) Random(ctx context.Context) ([]models.Recipe, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/recipes/randomRecipe", nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch random recipes: %w", err)
	}
	return decodeRecipes(raw)
}

// Favorites returns one page of the user's favorites. A zero page or limit
// leaves the parameter out and lets the server pick.
func (c *Client) Favorites(ctx context.Context, page, limit int) ([]models.Recipe, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/recipes/favorites", query, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch favorites: %w", err)
	}
	return decodeRecipes(raw)
}

// SaveFavorite saves the full recipe payload as a favorite
func (c *Client) SaveFavorite(ctx context.Context, recipe models.Recipe) error {
	body := struct {
		RecipeData models.Recipe `json:"recipeData"`
	}{RecipeData: recipe}

	if err := c.do(ctx, http.MethodPost, "/recipes/save", nil, body, nil); err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

// Rate submits a 1-5 rating for a recipe
func (c *Client) Rate(ctx context.Context, id string, rating int) (*models.RatingResult, error) {
	if rating < models.MinRating || rating > models.MaxRating {
		return nil, models.ErrRatingOutOfRange
	}
	if id == "" {
		return nil, models.ErrMissingRecipeID
	}

	body := map[string]int{"rating": rating}

	var raw json.RawMessage
	path := fmt.Sprintf("/recipes/%s/rate", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPost, path, nil, body, &raw); err != nil {
		return nil, fmt.Errorf("failed to rate recipe: %w", err)
	}
	return decodeRatingResult(raw), nil
}

// Review submits a free-text review for a recipe
func (c *Client) Review(ctx context.Context, id string, review string) error {
	if strings.TrimSpace(review) == "" {
		return models.ErrEmptyReview
	}
	if id == "" {
		return models.ErrMissingRecipeID
	}

	body := map[string]string{"review": review}
	path := fmt.Sprintf("/recipes/%s/review", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPost, path, nil, body, nil); err != nil {
		return fmt.Errorf("failed to review recipe: %w", err)
	}
	return nil
}

// decodeRecipes accepts a bare array, {"data": [...]} or {"data": {"data": [...]}}
func decodeRecipes(raw json.RawMessage) ([]models.Recipe, error) {
	current := bytes.TrimSpace(raw)
	for depth := 0; depth <= maxEnvelopeDepth; depth++ {
		if len(current) == 0 || bytes.Equal(current, []byte("null")) {
			return []models.Recipe{}, nil
		}

		switch current[0] {
		case '[':
			var recipes []models.Recipe
			if err := json.Unmarshal(current, &recipes); err != nil {
				return nil, fmt.Errorf("error decoding recipes: %w", err)
			}
			return recipes, nil
		case '{':
			var envelope struct {
				Data json.RawMessage `json:"data"`
			}
			if err := json.Unmarshal(current, &envelope); err != nil {
				return nil, fmt.Errorf("error decoding response: %w", err)
			}
			current = bytes.TrimSpace(envelope.Data)
		default:
			return nil, fmt.Errorf("unexpected recipe payload: %.40s", string(current))
		}
	}
	return nil, fmt.Errorf("recipe payload nested too deeply")
}

// decodeRatingResult finds an averageRating either at the top level or
// inside the data envelope. An unrecognised body yields an empty result.
func decodeRatingResult(raw json.RawMessage) *models.RatingResult {
	var payload struct {
		models.RatingResult
		Data *models.RatingResult `json:"data"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &models.RatingResult{}
	}
	if payload.Data != nil && payload.Data.AverageRating != nil {
		return payload.Data
	}
	return &payload.RatingResult
}
