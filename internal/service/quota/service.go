package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boostify/outreach/internal/domain"
)

// Service is the quota gatekeeper. It is safe for concurrent use; all
// coordination happens in the Store.
type Service struct {
	store        Store
	defaultLimit int
	now          func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for the day key.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a gatekeeper. A non-positive defaultLimit falls back
// to domain.DefaultDailyLimit.
func NewService(store Store, defaultLimit int, opts ...Option) *Service {
	if defaultLimit <= 0 {
		defaultLimit = domain.DefaultDailyLimit
	}
	s := &Service{store: store, defaultLimit: defaultLimit, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DefaultLimit is the limit applied to users without a record today.
func (s *Service) DefaultLimit() int { return s.defaultLimit }

// Today is the current day key.
func (s *Service) Today() string {
	return s.now().UTC().Format(domain.QuotaDateLayout)
}

// Remaining reports today's quota for a user.
func (s *Service) Remaining(ctx context.Context, userID string) (domain.QuotaStatus, error) {
	q, err := s.store.Get(ctx, userID, s.Today())
	if errors.Is(err, ErrNotFound) {
		return domain.QuotaStatus{Remaining: s.defaultLimit, Sent: 0, Limit: s.defaultLimit}, nil
	}
	if err != nil {
		return domain.QuotaStatus{}, fmt.Errorf("get quota: %w", err)
	}
	return q.Status(), nil
}

// Reservation is one taken send slot. It remembers its day so a release
// after midnight still returns the slot to the right record.
type Reservation struct {
	UserID string
	Date   string
	Status domain.QuotaStatus
}

// Reserve takes one send slot for today. ok=false means the quota is spent
// and nothing changed; Status then reflects the full record.
func (s *Service) Reserve(ctx context.Context, userID string) (*Reservation, bool, error) {
	date := s.Today()
	q, ok, err := s.store.Reserve(ctx, userID, date, s.defaultLimit)
	if err != nil {
		return nil, false, fmt.Errorf("reserve quota: %w", err)
	}
	r := &Reservation{UserID: userID, Date: date}
	switch {
	case q != nil:
		r.Status = q.Status()
	case !ok:
		r.Status = domain.QuotaStatus{Remaining: 0, Sent: s.defaultLimit, Limit: s.defaultLimit}
	}
	return r, ok, nil
}

// Release returns a slot taken by Reserve whose send did not succeed.
func (s *Service) Release(ctx context.Context, r *Reservation) error {
	if err := s.store.Release(ctx, r.UserID, r.Date); err != nil {
		return fmt.Errorf("release quota: %w", err)
	}
	return nil
}
