package artist

import (
	"context"
	"strings"

	"github.com/boostify/outreach/internal/domain"
)

// Service looks up artist profiles.
type Service struct {
	repo Repository
}

// NewService creates an artist service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns one artist by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Artist, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// ListByUser returns a user's artists. An empty user has none.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Artist, error) {
	if strings.TrimSpace(userID) == "" {
		return []domain.Artist{}, nil
	}
	artists, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if artists == nil {
		artists = []domain.Artist{}
	}
	return artists, nil
}
