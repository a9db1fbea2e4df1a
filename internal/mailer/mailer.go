// Package mailer implements the transactional email providers used for
// outreach delivery. Every provider reports rejections and transport
// failures as a SendResult with Success=false rather than an error.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/boostify/outreach/internal/config"
	"github.com/boostify/outreach/internal/domain"
)

// ErrNotConfigured is the result text when no provider credentials are set.
const ErrNotConfigured = "Email service not configured"

// Provider sends one rendered email.
type Provider interface {
	Name() string
	Send(ctx context.Context, msg *domain.OutboundEmail) (*domain.SendResult, error)
}

// New selects the provider named by cfg.Provider.
func New(ctx context.Context, cfg config.EmailConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "brevo":
		return NewBrevoClient(cfg.Brevo.APIKey, cfg.Brevo.BaseURL, cfg.Timeout()), nil
	case "ses":
		c, err := NewSESClient(ctx, cfg.SES.AccessKey, cfg.SES.SecretKey, cfg.SES.Region)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "sendgrid":
		return NewSendGridClient(cfg.SendGrid.APIKey), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}

func failed(provider, msg string) *domain.SendResult {
	return &domain.SendResult{Success: false, Provider: provider, Error: msg}
}
