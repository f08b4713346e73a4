package views

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"recipefinder/internal/models"
)

type favoritesCall struct {
	Page  int
	Limit int
}

// fakeAPI records every call and answers from canned data
type fakeAPI struct {
	mu sync.Mutex

	loginAuth *models.Auth
	loginErr  error
	regErr    error
	logoutErr error

	searchResults []models.Recipe
	searchErr     error
	random        []models.Recipe
	randomErr     error
	favoritePages map[int][]models.Recipe
	favoritesErr  error
	saveErr       error
	rateResult    *models.RatingResult
	rateErr       error
	reviewErr     error

	logins        int
	registrations []models.Registration
	logouts       int
	searches      []string
	randoms       int
	favoriteCalls []favoritesCall
	saved         []models.Recipe
	ratings       map[string]int
	reviews       map[string]string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		favoritePages: make(map[int][]models.Recipe),
		ratings:       make(map[string]int),
		reviews:       make(map[string]string),
	}
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.Auth, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	return f.loginAuth, f.loginErr
}

func (f *fakeAPI) Register(ctx context.Context, reg models.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registrations = append(f.registrations, reg)
	return f.regErr
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	return f.logoutErr
}

func (f *fakeAPI) Search(ctx context.Context, ingredient string) ([]models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, ingredient)
	return f.searchResults, f.searchErr
}

func (f *fakeAPI) Random(ctx context.Context) ([]models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.randoms++
	return f.random, f.randomErr
}

func (f *fakeAPI) Favorites(ctx context.Context, page, limit int) ([]models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.favoriteCalls = append(f.favoriteCalls, favoritesCall{Page: page, Limit: limit})
	if f.favoritesErr != nil {
		return nil, f.favoritesErr
	}
	return f.favoritePages[page], nil
}

func (f *fakeAPI) SaveFavorite(ctx context.Context, recipe models.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, recipe)
	return f.saveErr
}

func (f *fakeAPI) Rate(ctx context.Context, id string, rating int) (*models.RatingResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ratings[id] = rating
	return f.rateResult, f.rateErr
}

func (f *fakeAPI) Review(ctx context.Context, id string, review string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviews[id] = review
	return f.reviewErr
}

// fakeSession keeps the token in memory
type fakeSession struct {
	token    string
	loginErr error
}

func (s *fakeSession) Authenticated() bool { return s.token != "" }

func (s *fakeSession) Login(token string) error {
	if s.loginErr != nil {
		return s.loginErr
	}
	s.token = token
	return nil
}

func (s *fakeSession) Logout() error {
	s.token = ""
	return nil
}

func newEnv(api *fakeAPI, session *fakeSession) Env {
	return Env{API: api, Session: session, Logger: zap.NewNop(), PageSize: 5}
}

func recipe(id, title string) models.Recipe {
	return models.Recipe{ID: models.RecipeID(id), Title: title}
}

func recipes(n int, prefix string) []models.Recipe {
	out := make([]models.Recipe, n)
	for i := range out {
		out[i] = recipe(prefix+string(rune('a'+i)), prefix+" "+string(rune('A'+i)))
	}
	return out
}
