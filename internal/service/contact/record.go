package contact

import (
	"strings"

	"github.com/boostify/outreach/internal/domain"
)

// Record is one normalized input row. Every field has already been resolved
// from whichever header alias the source used and trimmed.
type Record struct {
	Email              string
	FullName           string
	FirstName          string
	LastName           string
	Title              string
	CompanyName        string
	CompanyWebsite     string
	CompanySize        string
	CompanyDescription string
	Industry           string
	Department         string
	SeniorityLevel     string
	City               string
	State              string
	Country            string
	LinkedInURL        string
	Phone              string
	Keywords           string
}

// field binds a Record field to the header names accepted for it, in
// priority order.
type field struct {
	aliases []string
	set     func(r *Record, v string)
}

var fields = []field{
	{[]string{"email", "Email"}, func(r *Record, v string) { r.Email = v }},
	{[]string{"full_name", "name", "Name"}, func(r *Record, v string) { r.FullName = v }},
	{[]string{"first_name"}, func(r *Record, v string) { r.FirstName = v }},
	{[]string{"last_name"}, func(r *Record, v string) { r.LastName = v }},
	{[]string{"title", "job_title"}, func(r *Record, v string) { r.Title = v }},
	{[]string{"company_name", "organization", "company"}, func(r *Record, v string) { r.CompanyName = v }},
	{[]string{"company_website", "website"}, func(r *Record, v string) { r.CompanyWebsite = v }},
	{[]string{"company_size", "employees"}, func(r *Record, v string) { r.CompanySize = v }},
	{[]string{"company_description"}, func(r *Record, v string) { r.CompanyDescription = v }},
	{[]string{"industry"}, func(r *Record, v string) { r.Industry = v }},
	{[]string{"department"}, func(r *Record, v string) { r.Department = v }},
	{[]string{"seniority_level", "seniority"}, func(r *Record, v string) { r.SeniorityLevel = v }},
	{[]string{"city"}, func(r *Record, v string) { r.City = v }},
	{[]string{"state"}, func(r *Record, v string) { r.State = v }},
	{[]string{"country"}, func(r *Record, v string) { r.Country = v }},
	{[]string{"linkedin_url", "profile_url"}, func(r *Record, v string) { r.LinkedInURL = v }},
	{[]string{"phone", "phone_number"}, func(r *Record, v string) { r.Phone = v }},
	{[]string{"keywords"}, func(r *Record, v string) { r.Keywords = v }},
}

// headerMap resolves a header row to column indexes, one per entry of
// fields (-1 when the source has no matching column).
type headerMap []int

func resolveHeader(header []string) headerMap {
	exact := make(map[string]int, len(header))
	folded := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := exact[h]; !ok {
			exact[h] = i
		}
		if _, ok := folded[strings.ToLower(h)]; !ok {
			folded[strings.ToLower(h)] = i
		}
	}

	hm := make(headerMap, len(fields))
	for fi, f := range fields {
		hm[fi] = -1
		for _, a := range f.aliases {
			if i, ok := exact[a]; ok {
				hm[fi] = i
				break
			}
		}
		if hm[fi] >= 0 {
			continue
		}
		for _, a := range f.aliases {
			if i, ok := folded[strings.ToLower(a)]; ok {
				hm[fi] = i
				break
			}
		}
	}
	return hm
}

// record builds a Record from one row. Rows shorter than the header leave
// the missing fields empty.
func (hm headerMap) record(row []string) Record {
	var r Record
	for fi, col := range hm {
		if col < 0 || col >= len(row) {
			continue
		}
		fields[fi].set(&r, strings.TrimSpace(row[col]))
	}
	return r
}

// Valid reports whether the record carries the minimum an import needs.
func (r Record) Valid() bool {
	return r.Email != "" && r.FullName != ""
}

// Contact converts the record into a new contact. Category and source
// metadata are left to the caller.
func (r Record) Contact() *domain.Contact {
	return &domain.Contact{
		Email:              strings.ToLower(r.Email),
		FullName:           r.FullName,
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Title:              r.Title,
		CompanyName:        r.CompanyName,
		CompanyWebsite:     r.CompanyWebsite,
		CompanySize:        r.CompanySize,
		CompanyDescription: r.CompanyDescription,
		Industry:           r.Industry,
		Department:         r.Department,
		SeniorityLevel:     r.SeniorityLevel,
		City:               r.City,
		State:              r.State,
		Country:            r.Country,
		LinkedInURL:        r.LinkedInURL,
		Phone:              r.Phone,
		Keywords:           r.Keywords,
		Status:             domain.ContactNew,
	}
}
