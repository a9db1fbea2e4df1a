package domain

import "time"

// TemplateType is the declared purpose of a template.
type TemplateType string

const (
	TemplateIntro    TemplateType = "intro"
	TemplateSync     TemplateType = "sync"
	TemplateFollowUp TemplateType = "follow_up"
	TemplateCustom   TemplateType = "custom"
)

// Template is a reusable subject/body pair with {{name}} placeholders.
// Variables always covers every placeholder in the subject and both bodies.
type Template struct {
	ID        string       `json:"id" db:"id"`
	UserID    string       `json:"userId,omitempty" db:"user_id"`
	Name      string       `json:"name" db:"name"`
	Subject   string       `json:"subject" db:"subject"`
	BodyHTML  string       `json:"bodyHtml" db:"body_html"`
	BodyText  string       `json:"bodyText,omitempty" db:"body_text"`
	Type      TemplateType `json:"type" db:"type"`
	Variables []string     `json:"variables" db:"variables"`
	IsActive  bool         `json:"isActive" db:"is_active"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" db:"updated_at"`
}
