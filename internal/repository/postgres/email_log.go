package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/boostify/outreach/internal/domain"
)

// EmailLogRepo implements delivery.LogRepository against PostgreSQL.
// Rows are insert-only.
type EmailLogRepo struct{ db *sql.DB }

// NewEmailLogRepo creates a Postgres-backed email log repository.
func NewEmailLogRepo(db *sql.DB) *EmailLogRepo { return &EmailLogRepo{db: db} }

func (r *EmailLogRepo) Insert(ctx context.Context, l *domain.EmailLog) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO outreach_email_logs
			(id, user_id, campaign_id, contact_id, template_id, recipient_email,
			 recipient_name, subject, status, provider_message_id, error_message,
			 sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), NULLIF($11, ''), $12, NOW())
		RETURNING created_at
	`, l.ID, l.UserID, l.CampaignID, l.ContactID, l.TemplateID, l.RecipientEmail,
		l.RecipientName, l.Subject, l.Status, l.ProviderMessageID, l.ErrorMessage,
		l.SentAt,
	).Scan(&l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert email log: %w", err)
	}
	return nil
}

func (r *EmailLogRepo) List(ctx context.Context, userID string, limit, offset int) ([]domain.EmailLog, int, error) {
	if limit <= 0 {
		limit = 50
	}
	where := ""
	args := []interface{}{}
	if userID != "" {
		where = " WHERE user_id = $1"
		args = append(args, userID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM outreach_email_logs`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count email logs: %w", err)
	}

	q := `
		SELECT id, user_id, campaign_id, contact_id, template_id, recipient_email,
		       recipient_name, subject, status, COALESCE(provider_message_id, ''),
		       COALESCE(error_message, ''), sent_at, created_at
		FROM outreach_email_logs` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list email logs: %w", err)
	}
	defer rows.Close()

	out := []domain.EmailLog{}
	for rows.Next() {
		var (
			l                      domain.EmailLog
			campaignID, templateID sql.NullString
		)
		if err := rows.Scan(
			&l.ID, &l.UserID, &campaignID, &l.ContactID, &templateID, &l.RecipientEmail,
			&l.RecipientName, &l.Subject, &l.Status, &l.ProviderMessageID,
			&l.ErrorMessage, &l.SentAt, &l.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan email log: %w", err)
		}
		if campaignID.Valid {
			l.CampaignID = &campaignID.String
		}
		if templateID.Valid {
			l.TemplateID = &templateID.String
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}
