package api

import (
	"context"
	"net/url"
	"strings"

	"github.com/claude/hypertroq/internal/models"
)

// Login exchanges credentials for tokens. The backend's OAuth2 login expects
// a form-urlencoded body with a "username" field carrying the email; every
// other endpoint speaks JSON.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthTokens, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var tokens models.AuthTokens
	err := c.do(ctx, "POST", "/auth/login", nil,
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &tokens)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Register creates a new account and organization.
func (c *Client) Register(ctx context.Context, data models.RegisterData) (*models.User, error) {
	var u models.User
	if err := c.sendJSON(ctx, "POST", "/auth/register", data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.getJSON(ctx, "/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
