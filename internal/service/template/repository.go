package template

import (
	"context"

	"github.com/boostify/outreach/internal/domain"
)

// Repository defines the data access contract for templates.
type Repository interface {
	// Create inserts a template. An empty ID is assigned by the repository.
	Create(ctx context.Context, t *domain.Template) error

	// Get returns a template by ID whether or not it is active.
	// Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.Template, error)

	// Update overwrites name, subject, bodies, type and variables.
	Update(ctx context.Context, t *domain.Template) error

	// Deactivate flags a template inactive. Returns ErrNotFound if missing.
	Deactivate(ctx context.Context, id string) error

	// List returns active templates, newest first.
	List(ctx context.Context, filter ListFilter) ([]domain.Template, error)
}

// ListFilter narrows template listings.
type ListFilter struct {
	UserID string
}
