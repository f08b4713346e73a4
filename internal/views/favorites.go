package views

import (
	"context"

	"go.uber.org/zap"

	"recipefinder/internal/models"
)

// Favorites messages
const (
	MsgNoFavorites       = "You have no favorite recipes yet please add some go to Search."
	MsgFavoritesFailed   = "Error fetching favorite recipes"
	DefaultFavoritesPage = 5
)

// PageRequest identifies one favorites page in flight
type PageRequest struct {
	Seq   int
	Page  int
	Limit int
}

// Favorites is the paginated favorites screen state
type Favorites struct {
	Items   []models.Recipe
	Page    int // next page to fetch, starting at 1
	Limit   int
	HasMore bool
	Loading bool
	Error   string
	Notice  string

	env Env
	seq int
}

// NewFavorites creates a favorites screen positioned before the first page
func NewFavorites(env Env) *Favorites {
	limit := env.PageSize
	if limit <= 0 {
		limit = DefaultFavoritesPage
	}
	return &Favorites{
		Page:    1,
		Limit:   limit,
		HasMore: true,
		env:     env,
	}
}

// Reset drops loaded pages and abandons any page in flight
func (f *Favorites) Reset() {
	f.seq++
	f.Items = nil
	f.Page = 1
	f.HasMore = true
	f.Loading = false
	f.Error = ""
	f.Notice = ""
}

// Cancel abandons the page in flight and keeps what was loaded
func (f *Favorites) Cancel() {
	f.seq++
	f.Loading = false
}

// BeginLoad starts fetching the next page. ok is false when everything
// has been loaded or a page is already in flight.
func (f *Favorites) BeginLoad() (req PageRequest, ok bool) {
	if !f.HasMore || f.Loading {
		return PageRequest{}, false
	}
	f.seq++
	f.Loading = true
	return PageRequest{Seq: f.seq, Page: f.Page, Limit: f.Limit}, true
}

// ApplyLoad appends a fetched page. A page shorter than the limit means
// there is nothing more to fetch.
func (f *Favorites) ApplyLoad(req PageRequest, items []models.Recipe, err error) bool {
	if req.Seq != f.seq {
		return false
	}
	f.Loading = false
	if err != nil {
		f.env.logger().Warn("error fetching favorites", zap.Int("page", req.Page), zap.Error(err))
		f.Error = MsgFavoritesFailed
		return true
	}

	f.Items = append(f.Items, items...)
	f.Error = ""
	f.Page = req.Page + 1
	f.HasMore = len(items) >= req.Limit
	return true
}

// LoadMore fetches the next page synchronously. loaded is false when no
// request was made.
func (f *Favorites) LoadMore(ctx context.Context) (loaded bool, err error) {
	req, ok := f.BeginLoad()
	if !ok {
		return false, nil
	}
	items, err := f.env.API.Favorites(ctx, req.Page, req.Limit)
	f.ApplyLoad(req, items, err)
	return true, err
}

// LoadAll keeps fetching pages until the server runs out
func (f *Favorites) LoadAll(ctx context.Context) error {
	for {
		loaded, err := f.LoadMore(ctx)
		if err != nil || !loaded {
			return err
		}
	}
}

// Unfavorite is not offered by the server
func (f *Favorites) Unfavorite(recipe models.Recipe) error {
	f.Notice = models.ErrUnfavoriteUnsupported.Error()
	return models.ErrUnfavoriteUnsupported
}

// PatchRecipe updates the stored copy of a recipe after a card change
func (f *Favorites) PatchRecipe(recipe models.Recipe) bool {
	return patchRecipe(f.Items, recipe)
}

// Cards returns one rate/review card per favorite
func (f *Favorites) Cards() []RecipeCard {
	cards := make([]RecipeCard, 0, len(f.Items))
	for _, recipe := range f.Items {
		cards = append(cards, NewCard(recipe, FromFavorites, true))
	}
	return cards
}

// EmptyMessage is the text shown when there are no favorites
func (f *Favorites) EmptyMessage() string {
	if len(f.Items) > 0 {
		return ""
	}
	return MsgNoFavorites
}
