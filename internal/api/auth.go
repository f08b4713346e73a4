package api

import (
	"context"
	"fmt"
	"net/http"

	"recipefinder/internal/models"
)

// Login authenticates the user and returns the issued access token. The
// caller decides where the token is kept.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Auth, error) {
	var response struct {
		Data struct {
			AccessToken string `json:"accessToken"`
			User        struct {
				Email string `json:"email"`
			} `json:"user"`
		} `json:"data"`
	}

	creds := models.Credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/users/login", nil, creds, &response); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if response.Data.AccessToken == "" {
		return nil, models.ErrNoToken
	}

	auth := &models.Auth{
		Token: response.Data.AccessToken,
		Email: response.Data.User.Email,
	}
	if auth.Email == "" {
		auth.Email = email
	}
	return auth, nil
}

// Register creates a new account. It does not log the user in.
func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	if err := c.do(ctx, http.MethodPost, "/users/register", nil, reg, nil); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}

// Logout notifies the server that the current token is being discarded.
// Clearing the local token is the caller's job.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/users/logout", nil, nil, nil); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}
