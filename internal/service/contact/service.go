package contact

import (
	"context"
	"strings"
	"time"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/pkg/distlock"
)

const defaultBatchSize = 50

// Service implements contact ingestion and queries. All public methods are
// safe for concurrent use if the underlying repository is.
type Service struct {
	repo      Repository
	objects   ObjectGetter
	locks     distlock.Factory
	lockTTL   time.Duration
	batchSize int
}

// Option customizes a Service.
type Option func(*Service)

// WithObjectStore enables s3://bucket/key import sources.
func WithObjectStore(g ObjectGetter) Option {
	return func(s *Service) { s.objects = g }
}

// WithLocks serializes imports of the same source across processes.
func WithLocks(f distlock.Factory, ttl time.Duration) Option {
	return func(s *Service) {
		s.locks = f
		s.lockTTL = ttl
	}
}

// WithBatchSize sets how many records are processed between progress logs.
func WithBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// NewService creates a contact service backed by the given repository.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, batchSize: defaultBatchSize, lockTTL: 10 * time.Minute}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Get returns a single contact.
func (s *Service) Get(ctx context.Context, id string) (*domain.Contact, error) {
	return s.repo.Get(ctx, id)
}

// List returns contacts matching the filter. The value "all" on any exact
// filter means no filter.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Contact, int, error) {
	f.Category = dropAll(f.Category)
	f.Industry = dropAll(f.Industry)
	f.Seniority = dropAll(f.Seniority)
	f.Country = dropAll(f.Country)
	f.Status = dropAll(f.Status)
	f.Search = strings.TrimSpace(f.Search)
	return s.repo.List(ctx, f)
}

// Stats returns the aggregate counts.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

// Filters returns the distinct filter values.
func (s *Service) Filters(ctx context.Context) (*FilterOptions, error) {
	return s.repo.Filters(ctx)
}

// UpdateStatus is a manual status edit. Any non-empty status is accepted.
func (s *Service) UpdateStatus(ctx context.Context, id string, status string) (*domain.Contact, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, domain.ContactStatus(status))
}

// MarkContacted records a successful send to the contact.
func (s *Service) MarkContacted(ctx context.Context, id string) error {
	return s.repo.MarkContacted(ctx, id)
}

// Create adds a single contact by hand. It follows the import rules:
// email is lower-cased, the category is classified when not given, and an
// existing email is refused with ErrDuplicateEmail.
func (s *Service) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.FullName = strings.TrimSpace(c.FullName)
	if c.Email == "" || c.FullName == "" {
		return nil, ErrInvalidContact
	}

	exists, err := s.repo.ExistsByEmail(ctx, c.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	if c.Category == "" {
		c.Category = Classify(strings.Join([]string{c.Industry, c.Keywords, c.CompanyName, c.CompanyDescription}, " "))
	}
	if c.Status == "" {
		c.Status = domain.ContactNew
	}
	if c.Source == "" {
		c.Source = "manual"
	}
	c.Phone = normalizePhone(c.Phone, c.Country)

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func dropAll(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}
