package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/service/campaign"
)

const campaignColumns = `id, user_id, artist_id, template_id, name, description,
	target_filters, daily_limit, status, sent_count, created_at, updated_at`

// CampaignRepo implements campaign.Repository against PostgreSQL.
type CampaignRepo struct{ db *sql.DB }

// NewCampaignRepo creates a Postgres-backed campaign repository.
func NewCampaignRepo(db *sql.DB) *CampaignRepo { return &CampaignRepo{db: db} }

func scanCampaign(s rowScanner) (*domain.Campaign, error) {
	var (
		c                    domain.Campaign
		artistID, templateID sql.NullString
		filters              []byte
	)
	err := s.Scan(
		&c.ID, &c.UserID, &artistID, &templateID, &c.Name, &c.Description,
		&filters, &c.DailyLimit, &c.Status, &c.SentCount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if artistID.Valid {
		c.ArtistID = &artistID.String
	}
	if templateID.Valid {
		c.TemplateID = &templateID.String
	}
	if len(filters) > 0 {
		c.TargetFilters = json.RawMessage(filters)
	}
	return &c, nil
}

func (r *CampaignRepo) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := scanCampaign(r.db.QueryRowContext(ctx,
		`SELECT `+campaignColumns+` FROM outreach_campaigns WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

func (r *CampaignRepo) List(ctx context.Context, userID string, f campaign.ListFilter) ([]domain.Campaign, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	where := ` WHERE user_id = $1`
	args := []interface{}{userID}
	idx := 2
	if f.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, f.Status)
		idx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM outreach_campaigns`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}

	q := `SELECT ` + campaignColumns + ` FROM outreach_campaigns` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	rows, err := r.db.QueryContext(ctx, q, append(args, limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	out := []domain.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, *c)
	}
	return out, total, rows.Err()
}

func (r *CampaignRepo) Create(ctx context.Context, c *domain.Campaign) (string, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	filters := []byte(c.TargetFilters)
	if len(filters) == 0 {
		filters = []byte(`{}`)
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO outreach_campaigns
			(id, user_id, artist_id, template_id, name, description, target_filters,
			 daily_limit, status, sent_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, NOW(), NOW())
		RETURNING created_at, updated_at
	`, c.ID, c.UserID, c.ArtistID, c.TemplateID, c.Name, c.Description,
		string(filters), c.DailyLimit, c.Status,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("create campaign: %w", err)
	}
	return c.ID, nil
}

func (r *CampaignRepo) Update(ctx context.Context, id string, u campaign.UpdateFields) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1
	add := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.TemplateID != nil {
		add("template_id", nullIfEmpty(*u.TemplateID))
	}
	if u.ArtistID != nil {
		add("artist_id", nullIfEmpty(*u.ArtistID))
	}
	if u.TargetFilters != nil {
		add("target_filters", string(u.TargetFilters))
	}
	if u.DailyLimit != nil {
		add("daily_limit", *u.DailyLimit)
	}

	if len(sets) == 0 {
		return nil
	}

	q := fmt.Sprintf("UPDATE outreach_campaigns SET %s, updated_at = NOW() WHERE id = $%d",
		strings.Join(sets, ", "), idx)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}

func (r *CampaignRepo) UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE outreach_campaigns SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}

func (r *CampaignRepo) IncrementSent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE outreach_campaigns SET sent_count = sent_count + 1, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("increment sent: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
