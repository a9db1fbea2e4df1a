package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/pkg/httputil"
	"github.com/boostify/outreach/internal/service/contact"
)

type importRequest struct {
	FilePath string `json:"filePath" validate:"required"`
}

// importContacts ingests a CSV or XLSX file from a local path or s3:// URL.
//
//	POST /api/outreach/contacts/import-from-csv
func (s *Server) importContacts(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	res, err := s.svc.Contacts.Import(r.Context(), req.FilePath)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, res)
}

// listContacts returns one filtered page of contacts.
//
//	GET /api/outreach/contacts?page=&limit=&search=&category=&industry=&seniority=&country=&status=
func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r, 50, 100)
	q := r.URL.Query()
	list, total, err := s.svc.Contacts.List(r.Context(), contact.ListFilter{
		Search:    q.Get("search"),
		Category:  q.Get("category"),
		Industry:  q.Get("industry"),
		Seniority: q.Get("seniority"),
		Country:   q.Get("country"),
		Status:    q.Get("status"),
		Limit:     p.Limit,
		Offset:    p.Offset,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]interface{}{
		"contacts":   list,
		"pagination": NewPaginationMeta(p, total),
	})
}

func (s *Server) contactStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Contacts.Stats(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, st)
}

func (s *Server) contactFilters(w http.ResponseWriter, r *http.Request) {
	fo, err := s.svc.Contacts.Filters(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, fo)
}

func (s *Server) getContact(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Contacts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, c)
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// updateContactStatus is the manual status edit.
//
//	PATCH /api/outreach/contacts/{id}/status
func (s *Server) updateContactStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	c, err := s.svc.Contacts.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, c)
}

type createContactRequest struct {
	Email          string `json:"email" validate:"required,email"`
	FullName       string `json:"fullName" validate:"required"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Title          string `json:"title"`
	CompanyName    string `json:"companyName"`
	CompanyWebsite string `json:"companyWebsite"`
	Industry       string `json:"industry"`
	SeniorityLevel string `json:"seniorityLevel"`
	City           string `json:"city"`
	Country        string `json:"country"`
	LinkedInURL    string `json:"linkedinUrl"`
	Phone          string `json:"phone"`
	Keywords       string `json:"keywords"`
	Category       string `json:"category"`
}

// createContact adds one contact by hand.
//
//	POST /api/outreach/contacts
func (s *Server) createContact(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	c, err := s.svc.Contacts.Create(r.Context(), &domain.Contact{
		Email:          req.Email,
		FullName:       req.FullName,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Title:          req.Title,
		CompanyName:    req.CompanyName,
		CompanyWebsite: req.CompanyWebsite,
		Industry:       req.Industry,
		SeniorityLevel: req.SeniorityLevel,
		City:           req.City,
		Country:        req.Country,
		LinkedInURL:    req.LinkedInURL,
		Phone:          req.Phone,
		Keywords:       req.Keywords,
		Category:       domain.ContactCategory(req.Category),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.Created(w, c)
}
