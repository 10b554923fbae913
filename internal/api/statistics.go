package api

import (
	"context"

	"gestion-formations/internal/models"
)

// Statistics gathers the dashboard aggregates. The endpoints are independent
// and cheap; they are fetched sequentially and the first failure wins, so the
// dashboard either renders complete or reports one error.
func (c *Client) Statistics(ctx context.Context) (*models.Statistics, error) {
	var stats models.Statistics
	if err := c.get(ctx, "/statistic/formations", nil, &stats.Formations); err != nil {
		return nil, err
	}
	if err := c.get(ctx, "/statistic/participants", nil, &stats.Participants); err != nil {
		return nil, err
	}
	if err := c.get(ctx, "/statistic/budget-par-domaine", nil, &stats.Budget); err != nil {
		return nil, err
	}
	return &stats, nil
}
