package delivery

import (
	"errors"

	"github.com/boostify/outreach/internal/domain"
)

// Sentinel errors for the delivery service layer.
var (
	ErrQuotaExceeded    = errors.New("daily email limit reached")
	ErrContactNotFound  = errors.New("contact not found")
	ErrNoEmail          = errors.New("contact has no email address")
	ErrTemplateNotFound = errors.New("template not found")
	ErrArtistNotFound   = errors.New("artist not found")
	ErrNoContacts       = errors.New("contactIds must not be empty")
	ErrUserRequired     = errors.New("userId is required")
)

// QuotaError is returned when the daily quota refuses a send. It matches
// ErrQuotaExceeded with errors.Is and carries the quota for the response.
type QuotaError struct {
	Status domain.QuotaStatus
}

func (e *QuotaError) Error() string { return ErrQuotaExceeded.Error() }

func (e *QuotaError) Unwrap() error { return ErrQuotaExceeded }
