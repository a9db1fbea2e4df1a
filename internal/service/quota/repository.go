package quota

import (
	"context"

	"github.com/boostify/outreach/internal/domain"
)

// Store defines the storage contract for daily quota records. Reserve and
// Release must each be a single atomic operation in the backing store.
type Store interface {
	// Get returns the record for (userID, date) or ErrNotFound.
	Get(ctx context.Context, userID, date string) (*domain.DailyQuota, error)

	// Reserve creates the record at sent=1 with defaultLimit, or increments
	// it while sent < limit. When the limit is reached it returns ok=false
	// and leaves the record untouched.
	Reserve(ctx context.Context, userID, date string, defaultLimit int) (q *domain.DailyQuota, ok bool, err error)

	// Release decrements sent, never below zero.
	Release(ctx context.Context, userID, date string) error
}
