package campaign

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/pkg/logger"
)

// Service implements campaign business logic. All public methods are safe
// for concurrent use if the underlying repository is concurrency-safe.
type Service struct {
	repo Repository
}

// NewService creates a campaign service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a single campaign.
func (s *Service) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.repo.Get(ctx, id)
}

// List returns a user's campaigns matching the filter.
func (s *Service) List(ctx context.Context, userID string, f ListFilter) ([]domain.Campaign, int, error) {
	return s.repo.List(ctx, userID, f)
}

// Create validates and persists a new campaign in draft status.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Campaign, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, ErrUserRequired
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	filters, err := normalizeFilters(input.TargetFilters)
	if err != nil {
		return nil, err
	}

	c := &domain.Campaign{
		ID:            uuid.New().String(),
		UserID:        input.UserID,
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		TargetFilters: filters,
		DailyLimit:    input.DailyLimit,
		Status:        domain.CampaignDraft,
	}
	if c.DailyLimit <= 0 {
		c.DailyLimit = domain.DefaultDailyLimit
	}
	if input.ArtistID != "" {
		c.ArtistID = &input.ArtistID
	}
	if input.TemplateID != "" {
		c.TemplateID = &input.TemplateID
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

// Update modifies mutable campaign fields.
func (s *Service) Update(ctx context.Context, id string, u UpdateFields) error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return ErrNameRequired
	}
	if u.TargetFilters != nil {
		f, err := normalizeFilters(u.TargetFilters)
		if err != nil {
			return err
		}
		u.TargetFilters = f
	}
	return s.repo.Update(ctx, id, u)
}

// Activate moves a draft campaign to active.
func (s *Service) Activate(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.CampaignActive)
}

// Complete closes an active campaign.
func (s *Service) Complete(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.CampaignCompleted)
}

var transitions = map[domain.CampaignStatus][]domain.CampaignStatus{
	domain.CampaignDraft:  {domain.CampaignActive, domain.CampaignCompleted},
	domain.CampaignActive: {domain.CampaignCompleted},
}

func (s *Service) transition(ctx context.Context, id string, to domain.CampaignStatus) error {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	for _, allowed := range transitions[c.Status] {
		if allowed == to {
			return s.repo.UpdateStatus(ctx, id, to)
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, to)
}

// IncrementSent records one successful send made under the campaign.
func (s *Service) IncrementSent(ctx context.Context, id string) error {
	if err := s.repo.IncrementSent(ctx, id); err != nil {
		logger.Warn("campaign sent counter not updated", "campaign_id", id, "error", err)
		return err
	}
	return nil
}

func normalizeFilters(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage(`{}`), nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, ErrInvalidFilters
	}
	return raw, nil
}

// CreateInput holds the fields for creating a new campaign.
type CreateInput struct {
	UserID        string          `json:"userId" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	ArtistID      string          `json:"artistId"`
	TemplateID    string          `json:"templateId"`
	TargetFilters json.RawMessage `json:"targetFilters"`
	DailyLimit    int             `json:"dailyLimit" validate:"gte=0"`
}
