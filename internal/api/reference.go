package api

import (
	"context"
	"fmt"

	"gestion-formations/internal/models"
)

// Reference entities (domaines, profils, employeurs, formateurs) share the
// same flat list/create/delete lifecycle.

func (c *Client) ListDomaines(ctx context.Context) ([]models.Domaine, error) {
	var out []models.Domaine
	if err := c.get(ctx, "/domaines", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateDomaine(ctx context.Context, d models.Domaine) (*models.Domaine, error) {
	var out models.Domaine
	if err := c.post(ctx, "/domaines", d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDomaine(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/domaines/%d", id))
}

func (c *Client) ListProfils(ctx context.Context) ([]models.Profil, error) {
	var out []models.Profil
	if err := c.get(ctx, "/profils", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProfil(ctx context.Context, p models.Profil) (*models.Profil, error) {
	var out models.Profil
	if err := c.post(ctx, "/profils", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProfil(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/profils/%d", id))
}

func (c *Client) ListEmployeurs(ctx context.Context) ([]models.Employeur, error) {
	var out []models.Employeur
	if err := c.get(ctx, "/employeurs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEmployeur(ctx context.Context, e models.Employeur) (*models.Employeur, error) {
	var out models.Employeur
	if err := c.post(ctx, "/employeurs", e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEmployeur(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/employeurs/%d", id))
}

func (c *Client) ListFormateurs(ctx context.Context) ([]models.Formateur, error) {
	var out []models.Formateur
	if err := c.get(ctx, "/formateurs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateFormateur(ctx context.Context, f models.Formateur) (*models.Formateur, error) {
	var out models.Formateur
	if err := c.post(ctx, "/formateurs", f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteFormateur(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/formateurs/%d", id))
}
