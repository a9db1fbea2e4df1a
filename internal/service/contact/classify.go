package contact

import (
	"strings"

	"github.com/boostify/outreach/internal/domain"
)

// categoryRule is one entry of the classification table. Rules are checked
// in order and the first one with a matching keyword wins.
type categoryRule struct {
	category domain.ContactCategory
	keywords []string
}

var categoryRules = []categoryRule{
	{domain.CategoryRecordLabel, []string{"record label", "warner", "universal", "sony music", "atlantic", "elektra"}},
	{domain.CategoryPublishing, []string{"publishing", "ascap", "bmi", "sesac", "songwriter"}},
	{domain.CategorySync, []string{"sync", "licensing", "film", "tv", "advertising", "commercial"}},
	{domain.CategoryManagement, []string{"management", "manager", "talent"}},
	{domain.CategoryBooking, []string{"booking", "agent", "tour", "live"}},
	{domain.CategoryPR, []string{"pr", "public relation", "publicity", "press"}},
	{domain.CategoryStreaming, []string{"streaming", "spotify", "apple music", "deezer", "beatport"}},
	{domain.CategoryPlaylist, []string{"playlist", "curator"}},
	{domain.CategoryRadio, []string{"radio", "dj", "broadcast"}},
	{domain.CategoryMedia, []string{"blog", "magazine", "media", "journalist", "press"}},
	{domain.CategoryDistribution, []string{"distribution", "distributor", "tunecore", "distrokid"}},
}

// Classify assigns exactly one category to free text. Keywords match as
// case-insensitive substrings, so "pr" also fires on "promotion".
func Classify(text string) domain.ContactCategory {
	text = strings.ToLower(text)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.category
			}
		}
	}
	return domain.CategoryOther
}

// ClassifyRecord classifies from the industry, keywords, company name and
// description of a record.
func ClassifyRecord(r Record) domain.ContactCategory {
	return Classify(strings.Join([]string{r.Industry, r.Keywords, r.CompanyName, r.CompanyDescription}, " "))
}
