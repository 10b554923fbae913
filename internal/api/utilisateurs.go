package api

import (
	"context"
	"fmt"

	"gestion-formations/internal/models"
)

func (c *Client) ListUtilisateurs(ctx context.Context) ([]models.Utilisateur, error) {
	var out []models.Utilisateur
	if err := c.get(ctx, "/utilisateurs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUtilisateur(ctx context.Context, u models.Credentials) (*models.Utilisateur, error) {
	var out models.Utilisateur
	if err := c.post(ctx, "/utilisateurs", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUtilisateur(ctx context.Context, id int64, u models.Utilisateur) (*models.Utilisateur, error) {
	var out models.Utilisateur
	if err := c.put(ctx, fmt.Sprintf("/utilisateurs/%d", id), u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUtilisateur(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/utilisateurs/%d", id))
}

// UpdateRole promotes or demotes an account. The running sessions of that
// account keep their old role until their next login; only the server-side
// record changes here.
func (c *Client) UpdateRole(ctx context.Context, id int64, role string) (*models.Utilisateur, error) {
	var out models.Utilisateur
	if err := c.post(ctx, fmt.Sprintf("/utilisateurs/updateRole/%d/%s", id, role), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
