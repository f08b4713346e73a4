package views

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"recipefinder/internal/models"
)

// Search messages
const (
	MsgNoRecipes      = "No recipes found try search an ingredient"
	MsgSearchFailed   = "Error fetching recipes"
	MsgFavoriteAdded  = "Recipe added to favorites"
	MsgFavoriteFailed = "Error saving recipe"
)

// SearchRequest identifies one search in flight
type SearchRequest struct {
	Seq        int
	Ingredient string
}

// Search is the ingredient search screen state
type Search struct {
	Ingredient string
	Recipes    []models.Recipe
	Favorites  []models.Recipe
	Error      string
	Notice     string
	Loading    bool

	env        Env
	searchSeq  int
	preloadSeq int
	saving     map[string]bool
}

// NewSearch creates an empty search screen
func NewSearch(env Env) *Search {
	return &Search{env: env, saving: make(map[string]bool)}
}

// BeginPreload starts loading the user's favorites so already-saved
// results can be marked. ok is false for anonymous sessions.
func (s *Search) BeginPreload() (seq int, ok bool) {
	if !s.env.Session.Authenticated() {
		return 0, false
	}
	s.preloadSeq++
	return s.preloadSeq, true
}

// ApplyPreload stores the preloaded favorites. Failures are logged only.
func (s *Search) ApplyPreload(seq int, favorites []models.Recipe, err error) bool {
	if seq != s.preloadSeq {
		return false
	}
	if err != nil {
		s.env.logger().Warn("error fetching favorites", zap.Error(err))
		return true
	}
	// keep favorites saved locally while the preload was in flight
	for _, local := range s.Favorites {
		if !containsRecipe(favorites, local) {
			favorites = append(favorites, local)
		}
	}
	s.Favorites = favorites
	return true
}

// Mount preloads favorites when the user is logged in
func (s *Search) Mount(ctx context.Context) {
	seq, ok := s.BeginPreload()
	if !ok {
		return
	}
	favorites, err := s.env.API.Favorites(ctx, 0, 0)
	s.ApplyPreload(seq, favorites, err)
}

// BeginSearch validates the ingredient and starts a search. Starting a
// new search supersedes any search still in flight.
func (s *Search) BeginSearch() (SearchRequest, error) {
	ingredient := strings.TrimSpace(s.Ingredient)
	if ingredient == "" {
		return SearchRequest{}, models.ErrEmptyIngredient
	}

	s.searchSeq++
	s.Loading = true
	s.Notice = ""
	return SearchRequest{Seq: s.searchSeq, Ingredient: ingredient}, nil
}

// ApplySearch stores the results of req unless a newer search was started
func (s *Search) ApplySearch(req SearchRequest, recipes []models.Recipe, err error) bool {
	if req.Seq != s.searchSeq {
		return false
	}
	s.Loading = false
	if err != nil {
		s.env.logger().Warn("search failed", zap.String("ingredient", req.Ingredient), zap.Error(err))
		s.Error = MsgSearchFailed
		return true
	}
	s.Recipes = recipes
	s.Error = ""
	return true
}

// Submit runs a search synchronously
func (s *Search) Submit(ctx context.Context) error {
	req, err := s.BeginSearch()
	if err != nil {
		return err
	}
	recipes, err := s.env.API.Search(ctx, req.Ingredient)
	s.ApplySearch(req, recipes, err)
	return err
}

// Cancel abandons the search and preload in flight. Saves in flight are
// settled by ApplyFavorite.
func (s *Search) Cancel() {
	s.searchSeq++
	s.preloadSeq++
	s.Loading = false
}

// IsFavorite reports whether recipe is already among the favorites
func (s *Search) IsFavorite(recipe models.Recipe) bool {
	return containsRecipe(s.Favorites, recipe)
}

// BeginFavorite checks that recipe can be saved
func (s *Search) BeginFavorite(recipe models.Recipe) error {
	if !s.env.Session.Authenticated() {
		s.Error = models.ErrNotAuthenticated.Error()
		return models.ErrNotAuthenticated
	}
	if s.IsFavorite(recipe) {
		s.Notice = MsgAlreadyFavorited
		return models.ErrAlreadyFavorite
	}
	key := favoriteKey(recipe)
	if s.saving[key] {
		return ErrBusy
	}
	s.saving[key] = true
	return nil
}

// ApplyFavorite appends recipe to the local favorites once the save succeeded
func (s *Search) ApplyFavorite(recipe models.Recipe, err error) error {
	delete(s.saving, favoriteKey(recipe))
	if errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		s.env.logger().Warn("error saving recipe", zap.String("title", recipe.Title), zap.Error(err))
		s.Error = MsgFavoriteFailed
		return err
	}
	if !s.IsFavorite(recipe) {
		s.Favorites = append(s.Favorites, recipe)
	}
	s.Error = ""
	s.Notice = MsgFavoriteAdded
	return nil
}

// Favorite saves the full recipe as a favorite
func (s *Search) Favorite(ctx context.Context, recipe models.Recipe) error {
	if err := s.BeginFavorite(recipe); err != nil {
		return err
	}
	return s.ApplyFavorite(recipe, s.env.API.SaveFavorite(ctx, recipe))
}

// Cards returns one card per search result
func (s *Search) Cards() []RecipeCard {
	cards := make([]RecipeCard, 0, len(s.Recipes))
	for _, recipe := range s.Recipes {
		cards = append(cards, NewCard(recipe, FromSearch, s.IsFavorite(recipe)))
	}
	return cards
}

// EmptyMessage is the text shown instead of cards, or "" when there are results
func (s *Search) EmptyMessage() string {
	if len(s.Recipes) > 0 {
		return ""
	}
	return MsgNoRecipes
}

func containsRecipe(list []models.Recipe, recipe models.Recipe) bool {
	for _, r := range list {
		if models.SameRecipe(r, recipe) {
			return true
		}
	}
	return false
}

func favoriteKey(recipe models.Recipe) string {
	if key := recipe.Key(); key != "" {
		return key
	}
	return "title:" + recipe.Title
}
