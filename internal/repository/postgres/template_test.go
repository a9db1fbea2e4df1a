package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/service/template"
)

var templateCols = []string{
	"id", "user_id", "name", "subject", "body_html", "body_text", "type",
	"variables", "is_active", "created_at", "updated_at",
}

func TestTemplateRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTemplateRepo(db)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO outreach_templates`).
		WithArgs(sqlmock.AnyArg(), "u1", "Intro", "Hi {{contact_name}}", "<p>Hi</p>", "", domain.TemplateIntro,
			"{\"contact_name\"}", true).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	tpl := &domain.Template{
		UserID: "u1", Name: "Intro", Subject: "Hi {{contact_name}}", BodyHTML: "<p>Hi</p>",
		Type: domain.TemplateIntro, Variables: []string{"contact_name"}, IsActive: true,
	}
	require.NoError(t, repo.Create(context.Background(), tpl))
	assert.NotEmpty(t, tpl.ID)
}

func TestTemplateRepo_GetScansVariables(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTemplateRepo(db)
	now := time.Now()

	mock.ExpectQuery(`FROM outreach_templates WHERE id = \$1`).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(templateCols).AddRow(
			"t1", "u1", "Intro", "Hi", "<p>{{artist_name}}</p>", "", "intro",
			"{contact_name,artist_name}", true, now, now))

	tpl, err := repo.Get(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"contact_name", "artist_name"}, tpl.Variables)
	assert.Equal(t, domain.TemplateIntro, tpl.Type)
}

func TestTemplateRepo_GetMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTemplateRepo(db)

	mock.ExpectQuery(`FROM outreach_templates WHERE id`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(templateCols))

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, template.ErrNotFound)
}

func TestTemplateRepo_ListSharedAndOwn(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTemplateRepo(db)
	now := time.Now()

	mock.ExpectQuery(`WHERE is_active = true AND \(user_id = \$1 OR user_id = ''\) ORDER BY created_at DESC`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(templateCols).
			AddRow("t2", "u1", "Mine", "s", "b", "", "custom", "{}", true, now, now).
			AddRow("t1", "", "Shared", "s", "b", "", "intro", nil, true, now, now))

	list, err := repo.List(context.Background(), template.ListFilter{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []string{}, list[1].Variables)
}

func TestTemplateRepo_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTemplateRepo(db)

	mock.ExpectExec(`UPDATE outreach_templates`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Template{ID: "nope", Name: "x"})
	assert.ErrorIs(t, err, template.ErrNotFound)
}

func TestTemplateRepo_Deactivate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTemplateRepo(db)

	mock.ExpectExec(`SET is_active = false, updated_at = NOW\(\) WHERE id = \$1 AND is_active = true`).
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Deactivate(context.Background(), "t1"))

	// second deactivation finds no active row
	mock.ExpectExec(`SET is_active = false`).
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Deactivate(context.Background(), "t1"), template.ErrNotFound)
}
