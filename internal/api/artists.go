package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boostify/outreach/internal/pkg/httputil"
)

// artistTemplate generates the per-artist outreach template with the
// contact slots left open.
//
//	GET /api/outreach/artist-template/{artistId}
func (s *Server) artistTemplate(w http.ResponseWriter, r *http.Request) {
	a, err := s.svc.Artists.Get(r.Context(), chi.URLParam(r, "artistId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	g, err := s.svc.Templates.ArtistTemplate(a)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]interface{}{"template": g})
}

// artistPreview renders the artist template for one sample contact.
//
//	GET /api/outreach/artist-preview/{artistId}?contactName=
func (s *Server) artistPreview(w http.ResponseWriter, r *http.Request) {
	a, err := s.svc.Artists.Get(r.Context(), chi.URLParam(r, "artistId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	page, err := s.svc.Templates.ArtistPreview(a, r.URL.Query().Get("contactName"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.HTML(w, http.StatusOK, page)
}

func (s *Server) myArtists(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		httputil.BadRequest(w, "userId is required")
		return
	}
	list, err := s.svc.Artists.ListByUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]interface{}{"artists": list})
}
