package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/service/contact"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

const contactColumns = `id, email, full_name, first_name, last_name, title,
	company_name, company_website, company_size, company_description,
	industry, department, seniority_level, city, state, country,
	linkedin_url, phone, keywords, category, status, source, source_details,
	emails_sent, last_contacted_at, created_at, updated_at`

// ContactRepo implements contact.Repository against PostgreSQL.
type ContactRepo struct{ db *sql.DB }

// NewContactRepo creates a Postgres-backed contact repository.
func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(s rowScanner) (*domain.Contact, error) {
	var c domain.Contact
	var lastContacted sql.NullTime
	err := s.Scan(
		&c.ID, &c.Email, &c.FullName, &c.FirstName, &c.LastName, &c.Title,
		&c.CompanyName, &c.CompanyWebsite, &c.CompanySize, &c.CompanyDescription,
		&c.Industry, &c.Department, &c.SeniorityLevel, &c.City, &c.State, &c.Country,
		&c.LinkedInURL, &c.Phone, &c.Keywords, &c.Category, &c.Status, &c.Source, &c.SourceDetails,
		&c.EmailsSent, &lastContacted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastContacted.Valid {
		t := lastContacted.Time
		c.LastContactedAt = &t
	}
	return &c, nil
}

func (r *ContactRepo) Get(ctx context.Context, id string) (*domain.Contact, error) {
	c, err := scanContact(r.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM outreach_contacts WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, contact.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

func (r *ContactRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM outreach_contacts WHERE email = LOWER($1))`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("contact exists: %w", err)
	}
	return exists, nil
}

func (r *ContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO outreach_contacts
			(id, email, full_name, first_name, last_name, title,
			 company_name, company_website, company_size, company_description,
			 industry, department, seniority_level, city, state, country,
			 linkedin_url, phone, keywords, category, status, source, source_details,
			 emails_sent, created_at, updated_at)
		VALUES ($1, LOWER($2), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, 0, NOW(), NOW())
		RETURNING created_at, updated_at
	`, c.ID, c.Email, c.FullName, c.FirstName, c.LastName, c.Title,
		c.CompanyName, c.CompanyWebsite, c.CompanySize, c.CompanyDescription,
		c.Industry, c.Department, c.SeniorityLevel, c.City, c.State, c.Country,
		c.LinkedInURL, c.Phone, c.Keywords, c.Category, c.Status, c.Source, c.SourceDetails,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return contact.ErrDuplicateEmail
		}
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern wraps s for an ILIKE substring match with its own
// wildcards taken literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// listWhere builds the WHERE clause shared by the count and page queries.
func listWhere(f contact.ListFilter) (string, []interface{}) {
	conds := []string{}
	args := []interface{}{}
	idx := 1

	if f.Search != "" {
		conds = append(conds, fmt.Sprintf(
			`(full_name ILIKE $%[1]d ESCAPE '\' OR company_name ILIKE $%[1]d ESCAPE '\' OR email ILIKE $%[1]d ESCAPE '\' OR keywords ILIKE $%[1]d ESCAPE '\')`,
			idx))
		args = append(args, containsPattern(f.Search))
		idx++
	}
	if f.Category != "" {
		conds = append(conds, fmt.Sprintf("category = $%d", idx))
		args = append(args, f.Category)
		idx++
	}
	if f.Industry != "" {
		conds = append(conds, fmt.Sprintf(`industry ILIKE $%d ESCAPE '\'`, idx))
		args = append(args, containsPattern(f.Industry))
		idx++
	}
	if f.Seniority != "" {
		conds = append(conds, fmt.Sprintf("seniority_level = $%d", idx))
		args = append(args, f.Seniority)
		idx++
	}
	if f.Country != "" {
		conds = append(conds, fmt.Sprintf("country = $%d", idx))
		args = append(args, f.Country)
		idx++
	}
	if f.Status != "" {
		conds = append(conds, fmt.Sprintf("status = $%d", idx))
		args = append(args, f.Status)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *ContactRepo) List(ctx context.Context, f contact.ListFilter) ([]domain.Contact, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	where, args := listWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM outreach_contacts`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	q := `SELECT ` + contactColumns + ` FROM outreach_contacts` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, q, append(args, limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	out := []domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, *c)
	}
	return out, total, rows.Err()
}

func (r *ContactRepo) Stats(ctx context.Context) (*contact.Stats, error) {
	st := &contact.Stats{}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM outreach_contacts`,
	).Scan(&st.Total); err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}

	var err error
	if st.ByCategory, err = r.groupCount(ctx, `
		SELECT category, COUNT(*) FROM outreach_contacts
		GROUP BY category ORDER BY COUNT(*) DESC, category`); err != nil {
		return nil, err
	}
	if st.ByStatus, err = r.groupCount(ctx, `
		SELECT status, COUNT(*) FROM outreach_contacts
		GROUP BY status ORDER BY COUNT(*) DESC, status`); err != nil {
		return nil, err
	}
	if st.ByCountry, err = r.groupCount(ctx, `
		SELECT country, COUNT(*) FROM outreach_contacts
		WHERE country <> ''
		GROUP BY country ORDER BY COUNT(*) DESC, country LIMIT 10`); err != nil {
		return nil, err
	}
	return st, nil
}

func (r *ContactRepo) groupCount(ctx context.Context, q string) ([]domain.CountBucket, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("contact stats: %w", err)
	}
	defer rows.Close()

	out := []domain.CountBucket{}
	for rows.Next() {
		var b domain.CountBucket
		if err := rows.Scan(&b.Value, &b.Count); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *ContactRepo) Filters(ctx context.Context) (*contact.FilterOptions, error) {
	var (
		fo  contact.FilterOptions
		err error
	)
	if fo.Categories, err = r.distinct(ctx, "category", 0); err != nil {
		return nil, err
	}
	if fo.Industries, err = r.distinct(ctx, "industry", 50); err != nil {
		return nil, err
	}
	if fo.SeniorityLevels, err = r.distinct(ctx, "seniority_level", 0); err != nil {
		return nil, err
	}
	if fo.Countries, err = r.distinct(ctx, "country", 0); err != nil {
		return nil, err
	}
	return &fo, nil
}

// distinct lists the non-empty values of a column. col is always one of
// the fixed column names above, never user input.
func (r *ContactRepo) distinct(ctx context.Context, col string, limit int) ([]string, error) {
	q := fmt.Sprintf(`SELECT DISTINCT %s FROM outreach_contacts WHERE %s <> '' ORDER BY %s`, col, col, col)
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", col, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", col, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *ContactRepo) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.Contact, error) {
	c, err := scanContact(r.db.QueryRowContext(ctx, `
		UPDATE outreach_contacts SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+contactColumns, status, id))
	if err == sql.ErrNoRows {
		return nil, contact.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update contact status: %w", err)
	}
	return c, nil
}

func (r *ContactRepo) MarkContacted(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE outreach_contacts
		SET status = $1, last_contacted_at = NOW(), emails_sent = emails_sent + 1, updated_at = NOW()
		WHERE id = $2
	`, domain.ContactContacted, id)
	if err != nil {
		return fmt.Errorf("mark contacted: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return contact.ErrNotFound
	}
	return nil
}
