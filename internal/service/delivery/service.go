package delivery

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/pkg/logger"
	"github.com/boostify/outreach/internal/pkg/metrics"
	"github.com/boostify/outreach/internal/service/artist"
	"github.com/boostify/outreach/internal/service/contact"
	"github.com/boostify/outreach/internal/service/template"
)

const artistBioLimit = 300

// Config holds the sender identity and pacing for outgoing mail.
type Config struct {
	Provider     string // label for metrics and logs
	FromEmail    string
	FromName     string
	SenderName   string
	BaseURL      string
	SendInterval time.Duration
}

// Deps are the collaborators of a Service. Campaigns may be nil.
type Deps struct {
	Contacts  ContactStore
	Templates TemplateSource
	Artists   ArtistSource
	Quota     QuotaGate
	Campaigns CampaignCounter
	Logs      LogRepository
	Sender    Sender
}

// Service orchestrates outreach delivery. It is safe for concurrent use;
// the quota gate is the only shared state and it is atomic in storage.
type Service struct {
	Deps
	cfg Config
	now func() time.Time
}

// NewService creates a delivery service.
func NewService(d Deps, cfg Config) *Service {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Service{Deps: d, cfg: cfg, now: time.Now}
}

// SingleRequest asks for one email to one contact. Content is resolved in
// order: TemplateID, then CustomSubject+CustomBody, then the artist's
// generated template when ArtistID is set, then the default intro.
type SingleRequest struct {
	UserID        string `json:"userId" validate:"required"`
	ContactID     string `json:"contactId" validate:"required"`
	TemplateID    string `json:"templateId"`
	ArtistID      string `json:"artistId"`
	CampaignID    string `json:"campaignId"`
	CustomSubject string `json:"customSubject"`
	CustomBody    string `json:"customBody"`
}

// SingleResult is the outcome of one send. A provider failure is a result
// with Success=false, not an error.
type SingleResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
	Remaining int    `json:"remaining"`
}

type content struct {
	subject    string
	html       string
	text       string
	templateID *string
}

// SendSingle sends one email. Quota refusal returns a *QuotaError and
// writes nothing. Every attempt that reaches the provider writes exactly
// one email-log row.
func (s *Service) SendSingle(ctx context.Context, req SingleRequest) (*SingleResult, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUserRequired
	}

	st, err := s.Quota.Remaining(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if st.Remaining <= 0 {
		metrics.QuotaRejections.Inc()
		return nil, &QuotaError{Status: st}
	}

	c, err := s.Contacts.Get(ctx, req.ContactID)
	if errors.Is(err, contact.ErrNotFound) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load contact: %w", err)
	}
	if strings.TrimSpace(c.Email) == "" {
		return nil, ErrNoEmail
	}

	var a *domain.Artist
	if req.ArtistID != "" {
		a, err = s.Artists.Get(ctx, req.ArtistID)
		if errors.Is(err, artist.ErrNotFound) {
			return nil, ErrArtistNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("load artist: %w", err)
		}
	}

	body, err := s.resolveContent(ctx, req, a)
	if err != nil {
		return nil, err
	}

	res, ok, err := s.Quota.Reserve(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.QuotaRejections.Inc()
		return nil, &QuotaError{Status: res.Status}
	}

	vars := s.variables(c, a)
	msg := &domain.OutboundEmail{
		ToEmail:   c.Email,
		ToName:    c.FullName,
		FromEmail: s.cfg.FromEmail,
		FromName:  s.cfg.FromName,
		Subject:   template.Render(body.subject, vars),
		HTMLBody:  template.RenderHTML(body.html, vars),
		TextBody:  template.Render(body.text, vars),
		Tags:      []string{"outreach", tagFor(a)},
	}

	start := time.Now()
	result, err := s.Sender.Send(ctx, msg)
	if err != nil {
		result = &domain.SendResult{Success: false, Error: err.Error()}
	}
	metrics.RecordSend(s.cfg.Provider, result.Success, time.Since(start))

	// bookkeeping must land even if the request went away mid-send
	bg := context.WithoutCancel(ctx)
	s.writeLog(bg, req, c, msg, body.templateID, result)

	if result.Success {
		if err := s.Contacts.MarkContacted(bg, c.ID); err != nil {
			logger.Error("mark contacted failed", "contact_id", c.ID, "error", err)
		}
		if req.CampaignID != "" && s.Campaigns != nil {
			if err := s.Campaigns.IncrementSent(bg, req.CampaignID); err != nil {
				logger.Error("campaign sent count failed", "campaign_id", req.CampaignID, "error", err)
			}
		}
	} else if err := s.Quota.Release(bg, res); err != nil {
		logger.Error("quota release failed", "user_id", req.UserID, "date", res.Date, "error", err)
	}

	out := &SingleResult{
		Success:   result.Success,
		MessageID: result.MessageID,
		Error:     result.Error,
		Remaining: res.Status.Remaining,
	}
	if !result.Success {
		out.MessageID = ""
		out.Remaining = min(res.Status.Remaining+1, res.Status.Limit)
	}
	if now, err := s.Quota.Remaining(bg, req.UserID); err == nil {
		out.Remaining = now.Remaining
	}
	return out, nil
}

func (s *Service) resolveContent(ctx context.Context, req SingleRequest, a *domain.Artist) (*content, error) {
	switch {
	case req.TemplateID != "":
		t, err := s.Templates.Get(ctx, req.TemplateID)
		if errors.Is(err, template.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("load template: %w", err)
		}
		id := t.ID
		return &content{subject: t.Subject, html: t.BodyHTML, text: t.BodyText, templateID: &id}, nil

	case req.CustomSubject != "" && req.CustomBody != "":
		return &content{subject: req.CustomSubject, html: req.CustomBody}, nil

	case a != nil:
		g, err := s.Templates.ArtistTemplate(a)
		if err != nil {
			return nil, fmt.Errorf("generate artist template: %w", err)
		}
		return &content{subject: g.Subject, html: g.BodyHTML, text: g.BodyText}, nil
	}

	d, _ := template.DefaultByKey(template.KeyArtistIntro)
	return &content{subject: d.Subject, html: d.BodyHTML, text: d.BodyText}, nil
}

// variables builds the render map for one recipient.
func (s *Service) variables(c *domain.Contact, a *domain.Artist) map[string]string {
	vars := map[string]string{
		"contact_name":    firstNonEmpty(c.GreetingName(), "there"),
		"company_name":    firstNonEmpty(c.CompanyName, "your company"),
		"artist_name":     "Our Artist",
		"genre":           "Music",
		"artist_bio":      "",
		"landing_url":     s.cfg.BaseURL,
		"sender_name":     s.cfg.SenderName,
		"unsubscribe_url": s.cfg.BaseURL + "/unsubscribe?email=" + url.QueryEscape(c.Email),
	}
	if a != nil {
		vars["artist_name"] = firstNonEmpty(a.Name, "Our Artist")
		vars["genre"] = template.GenreText(a.Genres)
		vars["artist_bio"] = template.Truncate(a.Biography, artistBioLimit)
		vars["landing_url"] = s.cfg.BaseURL + "/artist/" + a.PathSegment()
	}
	return vars
}

// writeLog persists the attempt. A storage failure is logged, not returned:
// the email has already left and the caller must still see the outcome.
func (s *Service) writeLog(ctx context.Context, req SingleRequest, c *domain.Contact, msg *domain.OutboundEmail, templateID *string, r *domain.SendResult) {
	entry := &domain.EmailLog{
		UserID:         req.UserID,
		ContactID:      c.ID,
		TemplateID:     templateID,
		RecipientEmail: msg.ToEmail,
		RecipientName:  msg.ToName,
		Subject:        msg.Subject,
		SentAt:         s.now().UTC(),
	}
	if req.CampaignID != "" {
		id := req.CampaignID
		entry.CampaignID = &id
	}
	if r.Success {
		entry.Status = domain.EmailSent
		entry.ProviderMessageID = r.MessageID
	} else {
		entry.Status = domain.EmailFailed
		entry.ErrorMessage = firstNonEmpty(r.Error, "unknown provider error")
	}

	if err := s.Logs.Insert(ctx, entry); err != nil {
		logger.Error("email log write failed",
			"email", msg.ToEmail, "status", entry.Status, "error", err)
		return
	}
	logger.Info("outreach email",
		"provider", s.cfg.Provider, "status", entry.Status, "email", msg.ToEmail,
		"contact_id", c.ID, "message_id", entry.ProviderMessageID)
}

// EmailLog returns the send history, newest first.
func (s *Service) EmailLog(ctx context.Context, userID string, limit, offset int) ([]domain.EmailLog, int, error) {
	return s.Logs.List(ctx, userID, limit, offset)
}

func tagFor(a *domain.Artist) string {
	if a != nil && a.Slug != "" {
		return a.Slug
	}
	return "general"
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
