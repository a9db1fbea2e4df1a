package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/pkg/logger"
)

// SendGridClient sends through the SendGrid v3 Mail Send API.
type SendGridClient struct {
	apiKey string
	host   string
}

// NewSendGridClient creates a SendGrid sender.
func NewSendGridClient(apiKey string) *SendGridClient {
	return &SendGridClient{apiKey: apiKey}
}

func (c *SendGridClient) Name() string { return "sendgrid" }

type sendgridErrors struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Send delivers one message with the outreach tags as categories.
func (c *SendGridClient) Send(ctx context.Context, msg *domain.OutboundEmail) (*domain.SendResult, error) {
	if c.apiKey == "" {
		return failed(c.Name(), ErrNotConfigured), nil
	}

	from := mail.NewEmail(msg.FromName, msg.FromEmail)
	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	p := mail.NewPersonalization()
	p.AddTos(to)

	m := mail.NewV3Mail()
	m.SetFrom(from)
	m.Subject = msg.Subject
	m.AddPersonalizations(p)
	// text/plain must precede text/html, and SendGrid rejects empty parts
	if msg.TextBody != "" {
		m.AddContent(mail.NewContent("text/plain", msg.TextBody))
	}
	m.AddContent(mail.NewContent("text/html", msg.HTMLBody))
	m.AddCategories(msg.Tags...)

	client := sendgrid.NewSendClient(c.apiKey)
	if c.host != "" {
		client.BaseURL = c.host + "/v3/mail/send"
	}

	resp, err := client.SendWithContext(ctx, m)
	if err != nil {
		logger.Warn("sendgrid request failed", "to", msg.ToEmail, "error", err)
		return failed(c.Name(), err.Error()), nil
	}
	if resp.StatusCode >= 400 {
		reason := fmt.Sprintf("SendGrid error %d", resp.StatusCode)
		var e sendgridErrors
		if json.Unmarshal([]byte(resp.Body), &e) == nil && len(e.Errors) > 0 && e.Errors[0].Message != "" {
			reason = e.Errors[0].Message
		}
		logger.Warn("sendgrid rejected message", "to", msg.ToEmail, "status", resp.StatusCode, "error", reason)
		return failed(c.Name(), reason), nil
	}

	var messageID string
	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		messageID = ids[0]
	}
	return &domain.SendResult{
		Success:   true,
		MessageID: messageID,
		Provider:  c.Name(),
		SentAt:    time.Now().UTC(),
	}, nil
}
