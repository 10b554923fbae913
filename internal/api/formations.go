package api

import (
	"context"
	"fmt"

	"gestion-formations/internal/models"
)

func (c *Client) ListFormations(ctx context.Context) ([]models.Formation, error) {
	var out []models.Formation
	if err := c.get(ctx, "/formations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetFormation(ctx context.Context, id int64) (*models.Formation, error) {
	var out models.Formation
	if err := c.get(ctx, fmt.Sprintf("/formations/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateFormation(ctx context.Context, f models.Formation) (*models.Formation, error) {
	var out models.Formation
	if err := c.post(ctx, "/formations", f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateFormation(ctx context.Context, id int64, f models.Formation) (*models.Formation, error) {
	var out models.Formation
	if err := c.put(ctx, fmt.Sprintf("/formations/%d", id), f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteFormation(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/formations/%d", id))
}
