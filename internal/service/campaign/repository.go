package campaign

import (
	"context"
	"encoding/json"

	"github.com/boostify/outreach/internal/domain"
)

// Repository defines the data access contract for campaigns.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a single campaign. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.Campaign, error)

	// List returns a user's campaigns matching the filter, ordered by created_at DESC.
	List(ctx context.Context, userID string, filter ListFilter) ([]domain.Campaign, int, error)

	// Create inserts a new campaign and returns its ID.
	Create(ctx context.Context, c *domain.Campaign) (string, error)

	// Update modifies a campaign. Only non-nil fields in the update are applied.
	Update(ctx context.Context, id string, u UpdateFields) error

	// UpdateStatus sets a campaign's status.
	UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error

	// IncrementSent atomically adds one to the campaign's sent counter.
	IncrementSent(ctx context.Context, id string) error
}

// ListFilter controls pagination and filtering for campaign lists.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}

// UpdateFields holds the mutable fields for a campaign update.
// Nil fields are not applied.
type UpdateFields struct {
	Name          *string
	Description   *string
	TemplateID    *string
	ArtistID      *string
	TargetFilters json.RawMessage
	DailyLimit    *int
}
