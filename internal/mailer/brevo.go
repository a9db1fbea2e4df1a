package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/pkg/logger"
)

// BrevoClient sends through the Brevo (ex-Sendinblue) SMTP API.
type BrevoClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewBrevoClient creates a Brevo sender. An empty apiKey yields a client
// whose every send fails with ErrNotConfigured.
func NewBrevoClient(apiKey, baseURL string, timeout time.Duration) *BrevoClient {
	if baseURL == "" {
		baseURL = "https://api.brevo.com"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &BrevoClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

func (c *BrevoClient) Name() string { return "brevo" }

type brevoAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoRequest struct {
	Sender      brevoAddress      `json:"sender"`
	To          []brevoAddress    `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	TextContent string            `json:"textContent,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
}

type brevoResponse struct {
	MessageID string `json:"messageId"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// Send posts one message to /v3/smtp/email.
func (c *BrevoClient) Send(ctx context.Context, msg *domain.OutboundEmail) (*domain.SendResult, error) {
	if c.apiKey == "" {
		return failed(c.Name(), ErrNotConfigured), nil
	}

	payload := brevoRequest{
		Sender:      brevoAddress{Email: msg.FromEmail, Name: msg.FromName},
		To:          []brevoAddress{{Email: msg.ToEmail, Name: msg.ToName}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTMLBody,
		TextContent: msg.TextBody,
		Tags:        msg.Tags,
		Headers:     map[string]string{"X-Mailin-Tag": "outreach"},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/smtp/email", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Warn("brevo request failed", "to", msg.ToEmail, "error", err)
		return failed(c.Name(), err.Error()), nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var out brevoResponse
	_ = json.Unmarshal(body, &out)

	if out.MessageID == "" {
		reason := out.Message
		if reason == "" {
			reason = fmt.Sprintf("Brevo error %d", resp.StatusCode)
		}
		logger.Warn("brevo rejected message", "to", msg.ToEmail, "status", resp.StatusCode, "code", out.Code, "error", reason)
		return failed(c.Name(), reason), nil
	}

	logger.Debug("brevo accepted message", "to", msg.ToEmail, "message_id", out.MessageID)
	return &domain.SendResult{
		Success:   true,
		MessageID: out.MessageID,
		Provider:  c.Name(),
		SentAt:    c.now().UTC(),
	}, nil
}
