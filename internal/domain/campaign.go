package domain

import (
	"encoding/json"
	"time"
)

// CampaignStatus enumerates the lifecycle states of an outreach campaign.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
)

// Campaign groups a template, an optional artist and a target filter.
type Campaign struct {
	ID            string          `json:"id" db:"id"`
	UserID        string          `json:"userId" db:"user_id"`
	ArtistID      *string         `json:"artistId,omitempty" db:"artist_id"`
	TemplateID    *string         `json:"templateId,omitempty" db:"template_id"`
	Name          string          `json:"name" db:"name"`
	Description   string          `json:"description,omitempty" db:"description"`
	TargetFilters json.RawMessage `json:"targetFilters,omitempty" db:"target_filters"`
	DailyLimit    int             `json:"dailyLimit" db:"daily_limit"`
	Status        CampaignStatus  `json:"status" db:"status"`
	SentCount     int             `json:"sentCount" db:"sent_count"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}
