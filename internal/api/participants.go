package api

import (
	"context"
	"fmt"
	"net/url"

	"gestion-formations/internal/models"
)

func (c *Client) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	var out []models.Participant
	if err := c.get(ctx, "/participants", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetParticipant fetches one participant; includeFormations expands the
// enrolled-formations collection server-side.
func (c *Client) GetParticipant(ctx context.Context, id int64, includeFormations bool) (*models.Participant, error) {
	var q url.Values
	if includeFormations {
		q = url.Values{"includeFormations": {"true"}}
	}
	var out models.Participant
	if err := c.get(ctx, fmt.Sprintf("/participants/%d", id), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateParticipant(ctx context.Context, p models.Participant) (*models.Participant, error) {
	var out models.Participant
	if err := c.post(ctx, "/participants", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateParticipant(ctx context.Context, id int64, p models.Participant) (*models.Participant, error) {
	var out models.Participant
	if err := c.put(ctx, fmt.Sprintf("/participants/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteParticipant(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/participants/%d", id))
}

// Enroll attaches a participant to a formation. This is the one enrollment
// write contract; the reconciliation flow calls it once per selected id.
func (c *Client) Enroll(ctx context.Context, participantID, formationID int64) error {
	return c.put(ctx, fmt.Sprintf("/participants/%d/formations/%d", participantID, formationID), nil, nil)
}

// Withdraw removes a participant from a formation.
func (c *Client) Withdraw(ctx context.Context, participantID, formationID int64) error {
	return c.delete(ctx, fmt.Sprintf("/participants/%d/formations/%d", participantID, formationID))
}
