package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/service/campaign"
)

var campaignCols = []string{
	"id", "user_id", "artist_id", "template_id", "name", "description",
	"target_filters", "daily_limit", "status", "sent_count", "created_at", "updated_at",
}

func TestCampaignRepo_Get(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCampaignRepo(db)
	now := time.Now()

	mock.ExpectQuery(`FROM outreach_campaigns WHERE id = \$1`).
		WithArgs("k1").
		WillReturnRows(sqlmock.NewRows(campaignCols).AddRow(
			"k1", "u1", "a1", nil, "Spring sync push", "",
			[]byte(`{"category":"sync"}`), 20, "active", 3, now, now))

	c, err := repo.Get(context.Background(), "k1")
	require.NoError(t, err)
	require.NotNil(t, c.ArtistID)
	assert.Equal(t, "a1", *c.ArtistID)
	assert.Nil(t, c.TemplateID)
	assert.JSONEq(t, `{"category":"sync"}`, string(c.TargetFilters))
	assert.Equal(t, domain.CampaignActive, c.Status)
}

func TestCampaignRepo_GetMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCampaignRepo(db)

	mock.ExpectQuery(`FROM outreach_campaigns WHERE id`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(campaignCols))

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, campaign.ErrNotFound)
}

func TestCampaignRepo_CreateDefaultsFilters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCampaignRepo(db)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO outreach_campaigns`).
		WithArgs(sqlmock.AnyArg(), "u1", nil, nil, "Launch", "", "{}", 20, domain.CampaignDraft).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	id, err := repo.Create(context.Background(), &domain.Campaign{
		UserID: "u1", Name: "Launch", DailyLimit: 20, Status: domain.CampaignDraft,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestCampaignRepo_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCampaignRepo(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM outreach_campaigns WHERE user_id = \$1 AND status = \$2`).
		WithArgs("u1", "active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("u1", "active", 50, 0).
		WillReturnRows(sqlmock.NewRows(campaignCols).AddRow(
			"k1", "u1", nil, nil, "Push", "", []byte(`{}`), 20, "active", 0, now, now))

	list, total, err := repo.List(context.Background(), "u1", campaign.ListFilter{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
}

func TestCampaignRepo_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCampaignRepo(db)
	name := "Renamed"
	clear := ""
	limit := 30

	mock.ExpectExec(`UPDATE outreach_campaigns SET name = \$1, template_id = \$2, target_filters = \$3, daily_limit = \$4, updated_at = NOW\(\) WHERE id = \$5`).
		WithArgs("Renamed", nil, `{"country":"Spain"}`, 30, "k1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), "k1", campaign.UpdateFields{
		Name:          &name,
		TemplateID:    &clear,
		TargetFilters: json.RawMessage(`{"country":"Spain"}`),
		DailyLimit:    &limit,
	})
	require.NoError(t, err)
}

func TestCampaignRepo_UpdateNothing(t *testing.T) {
	db, _ := newMock(t)
	repo := NewCampaignRepo(db)

	require.NoError(t, repo.Update(context.Background(), "k1", campaign.UpdateFields{}))
}

func TestCampaignRepo_IncrementSent(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCampaignRepo(db)

	mock.ExpectExec(`SET sent_count = sent_count \+ 1`).
		WithArgs("k1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.IncrementSent(context.Background(), "k1"))

	mock.ExpectExec(`SET sent_count = sent_count \+ 1`).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.IncrementSent(context.Background(), "gone"), campaign.ErrNotFound)
}

func TestCampaignRepo_UpdateStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCampaignRepo(db)

	mock.ExpectExec(`UPDATE outreach_campaigns SET status = \$1`).
		WithArgs(domain.CampaignCompleted, "k1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(context.Background(), "k1", domain.CampaignCompleted))
}
