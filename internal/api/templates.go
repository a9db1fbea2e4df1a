package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/pkg/httputil"
	"github.com/boostify/outreach/internal/service/template"
)

type templateRequest struct {
	UserID   string `json:"userId"`
	Name     string `json:"name" validate:"required"`
	Subject  string `json:"subject" validate:"required"`
	BodyHTML string `json:"bodyHtml" validate:"required"`
	BodyText string `json:"bodyText"`
	Type     string `json:"type" validate:"omitempty,oneof=intro sync follow_up custom"`
}

func (req templateRequest) input() template.Input {
	return template.Input{
		UserID:   req.UserID,
		Name:     req.Name,
		Subject:  req.Subject,
		BodyHTML: req.BodyHTML,
		BodyText: req.BodyText,
		Type:     domain.TemplateType(req.Type),
	}
}

// listTemplates returns active templates, the caller's own plus shared ones.
//
//	GET /api/outreach/templates?userId=
func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Templates.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, list)
}

func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	t, err := s.svc.Templates.Create(r.Context(), req.input())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.Created(w, t)
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Templates.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, t)
}

func (s *Server) updateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	t, err := s.svc.Templates.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, t)
}

// deleteTemplate deactivates the template; rows are kept for the email log.
func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Templates.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]bool{"success": true})
}

func (s *Server) defaultTemplates(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, template.Defaults())
}

// previewTemplate renders a built-in template with sample data.
//
//	GET /api/outreach/templates/preview/{type}
func (s *Server) previewTemplate(w http.ResponseWriter, r *http.Request) {
	page, err := s.svc.Templates.Preview(chi.URLParam(r, "type"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.HTML(w, http.StatusOK, page)
}
