package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostify/outreach/internal/domain"
)

func TestEmailLogRepo_InsertFailed(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEmailLogRepo(db)
	sent := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO outreach_email_logs .* NULLIF\(\$10, ''\), NULLIF\(\$11, ''\)`).
		WithArgs(sqlmock.AnyArg(), "u1", nil, "c1", nil, "ana@label.com", "Ana", "Hi",
			domain.EmailFailed, "", "Invalid sender", sent).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(sent))

	l := &domain.EmailLog{
		UserID: "u1", ContactID: "c1", RecipientEmail: "ana@label.com", RecipientName: "Ana",
		Subject: "Hi", Status: domain.EmailFailed, ErrorMessage: "Invalid sender", SentAt: sent,
	}
	require.NoError(t, repo.Insert(context.Background(), l))
	assert.NotEmpty(t, l.ID)
}

func TestEmailLogRepo_ListForUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEmailLogRepo(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM outreach_email_logs WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`FROM outreach_email_logs WHERE user_id = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("u1", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "campaign_id", "contact_id", "template_id", "recipient_email",
			"recipient_name", "subject", "status", "provider_message_id", "error_message",
			"sent_at", "created_at",
		}).
			AddRow("l2", "u1", "k1", "c2", nil, "b@x.com", "", "Hi", "sent", "<m2@brevo>", "", now, now).
			AddRow("l1", "u1", nil, "c1", "t1", "a@x.com", "", "Hi", "failed", "", "bounced", now, now))

	logs, total, err := repo.List(context.Background(), "u1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, logs, 2)
	require.NotNil(t, logs[0].CampaignID)
	assert.Equal(t, "k1", *logs[0].CampaignID)
	assert.Nil(t, logs[0].TemplateID)
	assert.Equal(t, "<m2@brevo>", logs[0].ProviderMessageID)
	assert.Equal(t, domain.EmailFailed, logs[1].Status)
	assert.Equal(t, "bounced", logs[1].ErrorMessage)
}
