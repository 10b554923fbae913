package api

import (
	"context"

	"gestion-formations/internal/models"
)

// Login exchanges credentials for a token and role.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.post(ctx, "/api/v1/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and logs it in; the server applies the
// UTILISATEUR default when no role is given.
func (c *Client) Register(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.post(ctx, "/api/v1/auth/register", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserInfo enriches the profile page; a failure here reports inline and
// never revokes the session.
func (c *Client) UserInfo(ctx context.Context) (*models.Utilisateur, error) {
	var out models.Utilisateur
	if err := c.get(ctx, "/api/v1/auth/user-info", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
