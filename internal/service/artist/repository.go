package artist

import (
	"context"

	"github.com/boostify/outreach/internal/domain"
)

// Repository is the data access contract for artist profiles.
type Repository interface {
	// Get returns one artist. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.Artist, error)

	// ListByUser returns the artists owned by a user, ordered by name.
	ListByUser(ctx context.Context, userID string) ([]domain.Artist, error)
}
