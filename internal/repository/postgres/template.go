package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/service/template"
)

const templateColumns = `id, user_id, name, subject, body_html, body_text, type,
	variables, is_active, created_at, updated_at`

// TemplateRepo implements template.Repository against PostgreSQL.
type TemplateRepo struct{ db *sql.DB }

// NewTemplateRepo creates a Postgres-backed template repository.
func NewTemplateRepo(db *sql.DB) *TemplateRepo { return &TemplateRepo{db: db} }

func scanTemplate(s rowScanner) (*domain.Template, error) {
	var t domain.Template
	err := s.Scan(
		&t.ID, &t.UserID, &t.Name, &t.Subject, &t.BodyHTML, &t.BodyText, &t.Type,
		pq.Array(&t.Variables), &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if t.Variables == nil {
		t.Variables = []string{}
	}
	return &t, nil
}

func (r *TemplateRepo) Create(ctx context.Context, t *domain.Template) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO outreach_templates
			(id, user_id, name, subject, body_html, body_text, type, variables,
			 is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`, t.ID, t.UserID, t.Name, t.Subject, t.BodyHTML, t.BodyText, t.Type,
		pq.Array(t.Variables), t.IsActive,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

func (r *TemplateRepo) Get(ctx context.Context, id string) (*domain.Template, error) {
	t, err := scanTemplate(r.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM outreach_templates WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, template.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

func (r *TemplateRepo) Update(ctx context.Context, t *domain.Template) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE outreach_templates
		SET name = $1, subject = $2, body_html = $3, body_text = $4, type = $5,
		    variables = $6, updated_at = NOW()
		WHERE id = $7
	`, t.Name, t.Subject, t.BodyHTML, t.BodyText, t.Type, pq.Array(t.Variables), t.ID)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return template.ErrNotFound
	}
	return nil
}

func (r *TemplateRepo) Deactivate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE outreach_templates SET is_active = false, updated_at = NOW()
		WHERE id = $1 AND is_active = true
	`, id)
	if err != nil {
		return fmt.Errorf("deactivate template: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return template.ErrNotFound
	}
	return nil
}

// List returns active templates. With a UserID, the user's own templates
// and the shared ones (empty user_id) are returned.
func (r *TemplateRepo) List(ctx context.Context, f template.ListFilter) ([]domain.Template, error) {
	q := `SELECT ` + templateColumns + ` FROM outreach_templates WHERE is_active = true`
	args := []interface{}{}
	if f.UserID != "" {
		q += ` AND (user_id = $1 OR user_id = '')`
		args = append(args, f.UserID)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	out := []domain.Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}
