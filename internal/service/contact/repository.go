package contact

import (
	"context"

	"github.com/boostify/outreach/internal/domain"
)

// Repository defines the data access contract for contacts.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a single contact. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.Contact, error)

	// ExistsByEmail reports whether a contact with the lower-cased email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create inserts a new contact. Returns ErrDuplicateEmail when the email
	// is already taken.
	Create(ctx context.Context, c *domain.Contact) error

	// List returns contacts matching the filter, newest first, and the total
	// number of matches.
	List(ctx context.Context, f ListFilter) ([]domain.Contact, int, error)

	// Stats aggregates counts across the whole store.
	Stats(ctx context.Context) (*Stats, error)

	// Filters returns the distinct values usable as list filters.
	Filters(ctx context.Context) (*FilterOptions, error)

	// UpdateStatus sets a contact's status and returns the updated row.
	UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.Contact, error)

	// MarkContacted records a successful send: status contacted,
	// last_contacted_at now, emails_sent + 1.
	MarkContacted(ctx context.Context, id string) error
}

// ListFilter controls pagination and filtering for contact lists. Empty
// fields are not applied.
type ListFilter struct {
	Search    string
	Category  string
	Industry  string
	Seniority string
	Country   string
	Status    string
	Limit     int
	Offset    int
}

// Stats is the aggregate view of the contact store.
type Stats struct {
	Total      int                  `json:"total"`
	ByCategory []domain.CountBucket `json:"byCategory"`
	ByStatus   []domain.CountBucket `json:"byStatus"`
	ByCountry  []domain.CountBucket `json:"byCountry"`
}

// FilterOptions lists the distinct values present in the store.
type FilterOptions struct {
	Categories      []string `json:"categories"`
	Industries      []string `json:"industries"`
	SeniorityLevels []string `json:"seniorityLevels"`
	Countries       []string `json:"countries"`
}
