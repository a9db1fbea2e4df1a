package contact

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var countryRegions = map[string]string{
	"united states":            "US",
	"usa":                      "US",
	"united states of america": "US",
	"canada":                   "CA",
	"united kingdom":           "GB",
	"uk":                       "GB",
	"england":                  "GB",
	"ireland":                  "IE",
	"germany":                  "DE",
	"france":                   "FR",
	"spain":                    "ES",
	"italy":                    "IT",
	"netherlands":              "NL",
	"sweden":                   "SE",
	"norway":                   "NO",
	"denmark":                  "DK",
	"australia":                "AU",
	"new zealand":              "NZ",
	"mexico":                   "MX",
	"brazil":                   "BR",
	"argentina":                "AR",
	"colombia":                 "CO",
	"japan":                    "JP",
	"south korea":              "KR",
	"india":                    "IN",
	"south africa":             "ZA",
	"nigeria":                  "NG",
}

// regionFor maps a free-text country to a phone region hint. Two-letter
// values are taken as ISO codes; unknown countries default to US.
func regionFor(country string) string {
	c := strings.TrimSpace(country)
	if len(c) == 2 {
		return strings.ToUpper(c)
	}
	if r, ok := countryRegions[strings.ToLower(c)]; ok {
		return r
	}
	return "US"
}

// normalizePhone returns the E.164 form of raw, or "" when it is not a
// valid number.
func normalizePhone(raw, country string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	parsed, err := phonenumbers.Parse(raw, regionFor(country))
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return ""
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}
