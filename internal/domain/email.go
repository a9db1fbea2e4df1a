package domain

import "time"

// EmailLogStatus is the outcome of one delivery attempt.
type EmailLogStatus string

const (
	EmailSent   EmailLogStatus = "sent"
	EmailFailed EmailLogStatus = "failed"
)

// EmailLog is an immutable record of one delivery attempt. Failed rows carry
// ErrorMessage and never a provider id.
type EmailLog struct {
	ID                string         `json:"id" db:"id"`
	UserID            string         `json:"userId" db:"user_id"`
	CampaignID        *string        `json:"campaignId,omitempty" db:"campaign_id"`
	ContactID         string         `json:"contactId" db:"contact_id"`
	TemplateID        *string        `json:"templateId,omitempty" db:"template_id"`
	RecipientEmail    string         `json:"recipientEmail" db:"recipient_email"`
	RecipientName     string         `json:"recipientName,omitempty" db:"recipient_name"`
	Subject           string         `json:"subject" db:"subject"`
	Status            EmailLogStatus `json:"status" db:"status"`
	ProviderMessageID string         `json:"providerMessageId,omitempty" db:"provider_message_id"`
	ErrorMessage      string         `json:"errorMessage,omitempty" db:"error_message"`
	SentAt            time.Time      `json:"sentAt" db:"sent_at"`
	CreatedAt         time.Time      `json:"createdAt" db:"created_at"`
}

// OutboundEmail is a fully rendered message handed to a provider.
type OutboundEmail struct {
	ToEmail   string
	ToName    string
	FromEmail string
	FromName  string
	Subject   string
	HTMLBody  string
	TextBody  string
	Tags      []string
}

// SendResult is what a provider reports for one message.
type SendResult struct {
	Success   bool      `json:"success"`
	MessageID string    `json:"messageId,omitempty"`
	Provider  string    `json:"provider"`
	Error     string    `json:"error,omitempty"`
	SentAt    time.Time `json:"sentAt"`
}
