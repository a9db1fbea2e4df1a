package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/service/quota"
)

// QuotaRepo implements quota.Store against PostgreSQL. Reserve is a single
// conditional upsert, so concurrent senders for one user and day serialize
// on the row lock and can never push emails_sent past daily_limit.
type QuotaRepo struct{ db *sql.DB }

// NewQuotaRepo creates a Postgres-backed quota store.
func NewQuotaRepo(db *sql.DB) *QuotaRepo { return &QuotaRepo{db: db} }

func (r *QuotaRepo) Get(ctx context.Context, userID, date string) (*domain.DailyQuota, error) {
	q := &domain.DailyQuota{UserID: userID, Date: date}
	err := r.db.QueryRowContext(ctx, `
		SELECT emails_sent, daily_limit FROM outreach_daily_quotas
		WHERE user_id = $1 AND date = $2
	`, userID, date).Scan(&q.EmailsSent, &q.DailyLimit)
	if err == sql.ErrNoRows {
		return nil, quota.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get quota: %w", err)
	}
	return q, nil
}

func (r *QuotaRepo) Reserve(ctx context.Context, userID, date string, defaultLimit int) (*domain.DailyQuota, bool, error) {
	if defaultLimit <= 0 {
		return nil, false, nil
	}
	q := &domain.DailyQuota{UserID: userID, Date: date}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO outreach_daily_quotas (user_id, date, emails_sent, daily_limit, created_at, updated_at)
		VALUES ($1, $2, 1, $3, NOW(), NOW())
		ON CONFLICT (user_id, date) DO UPDATE
			SET emails_sent = outreach_daily_quotas.emails_sent + 1, updated_at = NOW()
			WHERE outreach_daily_quotas.emails_sent < outreach_daily_quotas.daily_limit
		RETURNING emails_sent, daily_limit
	`, userID, date, defaultLimit).Scan(&q.EmailsSent, &q.DailyLimit)
	if err == sql.ErrNoRows {
		// the conflict row was at its limit and was left untouched
		cur, gerr := r.Get(ctx, userID, date)
		if gerr != nil {
			return nil, false, gerr
		}
		return cur, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reserve quota: %w", err)
	}
	return q, true, nil
}

func (r *QuotaRepo) Release(ctx context.Context, userID, date string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE outreach_daily_quotas
		SET emails_sent = emails_sent - 1, updated_at = NOW()
		WHERE user_id = $1 AND date = $2 AND emails_sent > 0
	`, userID, date)
	if err != nil {
		return fmt.Errorf("release quota: %w", err)
	}
	return nil
}
