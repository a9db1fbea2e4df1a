package template

import (
	"context"
	"fmt"
	"strings"

	"github.com/boostify/outreach/internal/domain"
)

// Options configures the template service.
type Options struct {
	BaseURL    string
	SenderName string
}

// Service implements template CRUD, previews and per-artist generation.
// It is safe for concurrent use.
type Service struct {
	repo       Repository
	artists    *ArtistGenerator
	baseURL    string
	senderName string
}

// NewService creates a template service backed by the given repository.
func NewService(repo Repository, opts Options) *Service {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	return &Service{
		repo:       repo,
		artists:    NewArtistGenerator(baseURL),
		baseURL:    baseURL,
		senderName: opts.SenderName,
	}
}

// Artists exposes the generator used for per-artist templates.
func (s *Service) Artists() *ArtistGenerator { return s.artists }

// Input carries the editable fields of a template.
type Input struct {
	UserID   string
	Name     string
	Subject  string
	BodyHTML string
	BodyText string
	Type     domain.TemplateType
}

func (in Input) validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Subject) == "" {
		missing = append(missing, "subject")
	}
	if strings.TrimSpace(in.BodyHTML) == "" {
		missing = append(missing, "bodyHtml")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrInvalidTemplate, strings.Join(missing, ", "))
	}
	switch in.Type {
	case "", domain.TemplateIntro, domain.TemplateSync, domain.TemplateFollowUp, domain.TemplateCustom:
		return nil
	}
	return fmt.Errorf("%w: unknown type %q", ErrInvalidTemplate, in.Type)
}

// Create stores a new active template. Its variable list is scanned from
// the subject and both bodies.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Template, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	t := &domain.Template{
		UserID:   in.UserID,
		IsActive: true,
	}
	apply(t, in)
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces the content of an active template.
func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Template, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(t, in)
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func apply(t *domain.Template, in Input) {
	t.Name = strings.TrimSpace(in.Name)
	t.Subject = in.Subject
	t.BodyHTML = in.BodyHTML
	t.BodyText = in.BodyText
	t.Type = in.Type
	if t.Type == "" {
		t.Type = domain.TemplateCustom
	}
	t.Variables = ExtractVariables(t.Subject, t.BodyHTML, t.BodyText)
}

// Delete soft-deletes a template.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

// Get returns an active template. Inactive templates read as ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*domain.Template, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, ErrNotFound
	}
	return t, nil
}

// List returns the active templates.
func (s *Service) List(ctx context.Context, userID string) ([]domain.Template, error) {
	return s.repo.List(ctx, ListFilter{UserID: userID})
}

// Preview renders a built-in template with sample data as a full HTML page.
func (s *Service) Preview(key string) (string, error) {
	d, ok := DefaultByKey(key)
	if !ok {
		return "", ErrUnknownPreviewType
	}
	vars := SampleData(s.senderName, s.baseURL)
	return previewPage(Render(d.Subject, vars), RenderHTML(d.BodyHTML, vars)), nil
}

// ArtistTemplate generates the per-artist template with contact slots open.
func (s *Service) ArtistTemplate(a *domain.Artist) (*Generated, error) {
	return s.artists.Generate(a)
}

// ArtistPreview generates the artist template and fills the contact slots
// with preview values. An empty contactName previews as "John Smith".
func (s *Service) ArtistPreview(a *domain.Artist, contactName string) (string, error) {
	g, err := s.artists.Generate(a)
	if err != nil {
		return "", err
	}
	if contactName == "" {
		contactName = "John Smith"
	}
	r := g.Render(map[string]string{
		"contact_name":    contactName,
		"sender_name":     s.senderName,
		"unsubscribe_url": s.baseURL + "/unsubscribe?id=preview",
	})
	return previewPage(r.Subject, r.BodyHTML), nil
}
