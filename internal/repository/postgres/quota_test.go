package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostify/outreach/internal/service/quota"
)

func TestQuotaRepo_Get(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQuotaRepo(db)

	mock.ExpectQuery(`SELECT emails_sent, daily_limit FROM outreach_daily_quotas`).
		WithArgs("u1", "2026-03-14").
		WillReturnRows(sqlmock.NewRows([]string{"emails_sent", "daily_limit"}).AddRow(7, 20))

	q, err := repo.Get(context.Background(), "u1", "2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, 7, q.EmailsSent)
	assert.Equal(t, 20, q.DailyLimit)
	assert.Equal(t, "2026-03-14", q.Date)
}

func TestQuotaRepo_GetMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQuotaRepo(db)

	mock.ExpectQuery(`SELECT emails_sent, daily_limit FROM outreach_daily_quotas`).
		WithArgs("u1", "2026-03-14").
		WillReturnRows(sqlmock.NewRows([]string{"emails_sent", "daily_limit"}))

	_, err := repo.Get(context.Background(), "u1", "2026-03-14")
	assert.ErrorIs(t, err, quota.ErrNotFound)
}

func TestQuotaRepo_ReserveGranted(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQuotaRepo(db)

	mock.ExpectQuery(`INSERT INTO outreach_daily_quotas .* ON CONFLICT \(user_id, date\) DO UPDATE .* WHERE outreach_daily_quotas.emails_sent < outreach_daily_quotas.daily_limit\s+RETURNING emails_sent, daily_limit`).
		WithArgs("u1", "2026-03-14", 20).
		WillReturnRows(sqlmock.NewRows([]string{"emails_sent", "daily_limit"}).AddRow(1, 20))

	q, ok, err := repo.Reserve(context.Background(), "u1", "2026-03-14", 20)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, q.EmailsSent)
}

func TestQuotaRepo_ReserveRefusedAtLimit(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQuotaRepo(db)

	// conditional update matched nothing: no row comes back
	mock.ExpectQuery(`INSERT INTO outreach_daily_quotas`).
		WithArgs("u1", "2026-03-14", 20).
		WillReturnRows(sqlmock.NewRows([]string{"emails_sent", "daily_limit"}))
	mock.ExpectQuery(`SELECT emails_sent, daily_limit FROM outreach_daily_quotas`).
		WithArgs("u1", "2026-03-14").
		WillReturnRows(sqlmock.NewRows([]string{"emails_sent", "daily_limit"}).AddRow(20, 20))

	q, ok, err := repo.Reserve(context.Background(), "u1", "2026-03-14", 20)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 20, q.EmailsSent)
}

func TestQuotaRepo_ReserveError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQuotaRepo(db)

	mock.ExpectQuery(`INSERT INTO outreach_daily_quotas`).
		WillReturnError(errors.New("connection refused"))

	_, _, err := repo.Reserve(context.Background(), "u1", "2026-03-14", 20)
	assert.ErrorContains(t, err, "reserve quota")
}

func TestQuotaRepo_ReserveZeroLimit(t *testing.T) {
	db, _ := newMock(t)
	repo := NewQuotaRepo(db)

	q, ok, err := repo.Reserve(context.Background(), "u1", "2026-03-14", 0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, q)
}

func TestQuotaRepo_Release(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQuotaRepo(db)

	mock.ExpectExec(`UPDATE outreach_daily_quotas\s+SET emails_sent = emails_sent - 1.*AND emails_sent > 0`).
		WithArgs("u1", "2026-03-14").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Release(context.Background(), "u1", "2026-03-14"))
}
