package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// TokenFileName is the file holding the session token inside the config directory
const TokenFileName = ".token"

// TokenStore persists the session token on disk
type TokenStore struct {
	TokenFile string
}

func NewTokenStore(configDir string) *TokenStore {
	return &TokenStore{
		TokenFile: filepath.Join(configDir, TokenFileName),
	}
}

func (ts *TokenStore) SaveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(ts.TokenFile), 0755); err != nil {
		return err
	}
	return os.WriteFile(ts.TokenFile, []byte(token), 0600) // Restricted permissions
}

// GetToken returns the stored token, or "" with no error when nothing is stored
func (ts *TokenStore) GetToken() (string, error) {
	data, err := os.ReadFile(ts.TokenFile)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (ts *TokenStore) ClearToken() error {
	if _, err := os.Stat(ts.TokenFile); os.IsNotExist(err) {
		return nil // File doesn't exist, nothing to clear
	}
	return os.Remove(ts.TokenFile)
}
