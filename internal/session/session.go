// Package session holds the client's single source of truth for
// authentication state. Every consumer asks the Store for the token at
// the moment it needs it, and subscribers are told when the state flips.
package session

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"recipefinder/internal/models"
)

// Event describes a change of authentication state
type Event struct {
	Authenticated bool
}

// Store wraps the on-disk token and broadcasts login/logout
type Store struct {
	tokens *models.TokenStore
	logger *zap.Logger

	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	last   bool
}

// NewStore creates a session store backed by tokens
func NewStore(tokens *models.TokenStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		tokens: tokens,
		logger: logger,
		subs:   make(map[int]chan Event),
	}
	s.last = s.Authenticated()
	return s
}

// Token returns the currently stored token, read fresh from disk
func (s *Store) Token() string {
	token, err := s.tokens.GetToken()
	if err != nil {
		s.logger.Warn("failed to read session token", zap.Error(err))
		return ""
	}
	return token
}

// Authenticated reports whether a token is stored
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Login persists token and notifies subscribers
func (s *Store) Login(token string) error {
	if token == "" {
		return models.ErrNoToken
	}
	if err := s.tokens.SaveToken(token); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}
	s.publish(true)
	return nil
}

// Logout removes the stored token and notifies subscribers
func (s *Store) Logout() error {
	if err := s.tokens.ClearToken(); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	s.publish(false)
	return nil
}

// Subscribe returns a channel receiving the latest state change and a
// function that ends the subscription. Slow readers only see the most
// recent event.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Event, 1)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
}

// Watch follows the token file so changes made by another process (a
// `recipes logout` in a second terminal) reach subscribers. It blocks
// until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// The token file comes and goes, so watch its directory.
	dir := filepath.Dir(s.tokens.TokenFile)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	s.logger.Debug("watching session token", zap.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.tokens.TokenFile) {
				continue
			}
			s.publish(s.Authenticated())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("session watcher error", zap.Error(err))
		}
	}
}

// publish sends the state to subscribers when it differs from the last one
func (s *Store) publish(authenticated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if authenticated == s.last {
		return
	}
	s.last = authenticated
	s.logger.Info("session changed", zap.Bool("authenticated", authenticated))

	ev := Event{Authenticated: authenticated}
	for _, ch := range s.subs {
		// drop a stale pending event so the newest one always fits
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}
