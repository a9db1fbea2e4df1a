package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/service/artist"
)

const artistColumns = `id, user_id, name, slug, biography, profile_image, cover_image,
	genres, country, spotify_url, instagram_url, youtube_url`

// ArtistRepo implements artist.Repository against PostgreSQL.
type ArtistRepo struct{ db *sql.DB }

// NewArtistRepo creates a Postgres-backed artist repository.
func NewArtistRepo(db *sql.DB) *ArtistRepo { return &ArtistRepo{db: db} }

func scanArtist(s rowScanner) (*domain.Artist, error) {
	var a domain.Artist
	err := s.Scan(
		&a.ID, &a.UserID, &a.Name, &a.Slug, &a.Biography, &a.ProfileImage, &a.CoverImage,
		pq.Array(&a.Genres), &a.Country, &a.SpotifyURL, &a.InstagramURL, &a.YouTubeURL,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ArtistRepo) Get(ctx context.Context, id string) (*domain.Artist, error) {
	a, err := scanArtist(r.db.QueryRowContext(ctx,
		`SELECT `+artistColumns+` FROM artists WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, artist.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artist: %w", err)
	}
	return a, nil
}

func (r *ArtistRepo) ListByUser(ctx context.Context, userID string) ([]domain.Artist, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+artistColumns+` FROM artists WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	out := []domain.Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}
