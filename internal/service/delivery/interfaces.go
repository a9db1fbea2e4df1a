package delivery

import (
	"context"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/service/quota"
	"github.com/boostify/outreach/internal/service/template"
)

// Sender delivers one email through a transactional email provider.
// A provider rejection or network failure is reported as a result with
// Success=false; nothing is persisted. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg *domain.OutboundEmail) (*domain.SendResult, error)
}

// ContactStore is the slice of the contact service delivery needs.
type ContactStore interface {
	Get(ctx context.Context, id string) (*domain.Contact, error)
	MarkContacted(ctx context.Context, id string) error
}

// TemplateSource resolves stored and per-artist templates.
type TemplateSource interface {
	Get(ctx context.Context, id string) (*domain.Template, error)
	ArtistTemplate(a *domain.Artist) (*template.Generated, error)
}

// ArtistSource looks up artist profiles.
type ArtistSource interface {
	Get(ctx context.Context, id string) (*domain.Artist, error)
}

// QuotaGate is the daily send quota.
type QuotaGate interface {
	Remaining(ctx context.Context, userID string) (domain.QuotaStatus, error)
	Reserve(ctx context.Context, userID string) (*quota.Reservation, bool, error)
	Release(ctx context.Context, r *quota.Reservation) error
}

// CampaignCounter bumps a campaign's sent counter.
type CampaignCounter interface {
	IncrementSent(ctx context.Context, id string) error
}

// LogRepository persists email-log rows. Rows are insert-only.
type LogRepository interface {
	Insert(ctx context.Context, l *domain.EmailLog) error
	// List returns rows newest first. An empty userID lists every user.
	List(ctx context.Context, userID string, limit, offset int) ([]domain.EmailLog, int, error)
}
