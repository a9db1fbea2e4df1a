package domain

import "time"

// ContactCategory is the industry classification assigned at ingestion.
type ContactCategory string

const (
	CategoryRecordLabel  ContactCategory = "record_label"
	CategoryPublishing   ContactCategory = "publishing"
	CategorySync         ContactCategory = "sync"
	CategoryManagement   ContactCategory = "management"
	CategoryBooking      ContactCategory = "booking"
	CategoryPR           ContactCategory = "pr"
	CategoryStreaming    ContactCategory = "streaming"
	CategoryPlaylist     ContactCategory = "playlist"
	CategoryRadio        ContactCategory = "radio"
	CategoryMedia        ContactCategory = "media"
	CategoryDistribution ContactCategory = "distribution"
	CategoryOther        ContactCategory = "other"
)

// ContactStatus tracks engagement. The set is open: manual edits may store
// any non-empty value.
type ContactStatus string

const (
	ContactNew          ContactStatus = "new"
	ContactContacted    ContactStatus = "contacted"
	ContactReplied      ContactStatus = "replied"
	ContactBounced      ContactStatus = "bounced"
	ContactUnsubscribed ContactStatus = "unsubscribed"
)

// ContactSourceImport marks contacts created by a bulk file import.
const ContactSourceImport = "csv_import"

// Contact is a prospective industry recipient. Email is stored lower-cased
// and is unique across the store.
type Contact struct {
	ID                 string          `json:"id" db:"id"`
	Email              string          `json:"email" db:"email"`
	FullName           string          `json:"fullName" db:"full_name"`
	FirstName          string          `json:"firstName,omitempty" db:"first_name"`
	LastName           string          `json:"lastName,omitempty" db:"last_name"`
	Title              string          `json:"title,omitempty" db:"title"`
	CompanyName        string          `json:"companyName,omitempty" db:"company_name"`
	CompanyWebsite     string          `json:"companyWebsite,omitempty" db:"company_website"`
	CompanySize        string          `json:"companySize,omitempty" db:"company_size"`
	CompanyDescription string          `json:"companyDescription,omitempty" db:"company_description"`
	Industry           string          `json:"industry,omitempty" db:"industry"`
	Department         string          `json:"department,omitempty" db:"department"`
	SeniorityLevel     string          `json:"seniorityLevel,omitempty" db:"seniority_level"`
	City               string          `json:"city,omitempty" db:"city"`
	State              string          `json:"state,omitempty" db:"state"`
	Country            string          `json:"country,omitempty" db:"country"`
	LinkedInURL        string          `json:"linkedinUrl,omitempty" db:"linkedin_url"`
	Phone              string          `json:"phone,omitempty" db:"phone"`
	Keywords           string          `json:"keywords,omitempty" db:"keywords"`
	Category           ContactCategory `json:"category" db:"category"`
	Status             ContactStatus   `json:"status" db:"status"`
	Source             string          `json:"source" db:"source"`
	SourceDetails      string          `json:"sourceDetails,omitempty" db:"source_details"`
	EmailsSent         int             `json:"emailsSent" db:"emails_sent"`
	LastContactedAt    *time.Time      `json:"lastContactedAt,omitempty" db:"last_contacted_at"`
	CreatedAt          time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time       `json:"updatedAt" db:"updated_at"`
}

// GreetingName returns the name used in a salutation: the first name, else
// the first word of the full name.
func (c *Contact) GreetingName() string {
	if c.FirstName != "" {
		return c.FirstName
	}
	for i, r := range c.FullName {
		if r == ' ' {
			return c.FullName[:i]
		}
	}
	return c.FullName
}

// CountBucket is one row of a grouped count.
type CountBucket struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}
