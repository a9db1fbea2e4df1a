package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boostify/outreach/internal/pkg/httputil"
	"github.com/boostify/outreach/internal/service/campaign"
)

func (s *Server) listCampaigns(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		httputil.BadRequest(w, "userId is required")
		return
	}
	p := ParsePagination(r, 50, 200)
	list, total, err := s.svc.Campaigns.List(r.Context(), userID, campaign.ListFilter{
		Status: r.URL.Query().Get("status"),
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]interface{}{
		"campaigns":  list,
		"pagination": NewPaginationMeta(p, total),
	})
}

func (s *Server) createCampaign(w http.ResponseWriter, r *http.Request) {
	var in campaign.CreateInput
	if !s.decodeValid(w, r, &in) {
		return
	}
	c, err := s.svc.Campaigns.Create(r.Context(), in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.Created(w, c)
}

func (s *Server) getCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Campaigns.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, c)
}

type campaignUpdateRequest struct {
	Name          *string         `json:"name"`
	Description   *string         `json:"description"`
	TemplateID    *string         `json:"templateId"`
	ArtistID      *string         `json:"artistId"`
	TargetFilters json.RawMessage `json:"targetFilters"`
	DailyLimit    *int            `json:"dailyLimit" validate:"omitempty,gte=1"`
}

// updateCampaign applies the fields present in the body.
//
//	PUT /api/outreach/campaigns/{id}
func (s *Server) updateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignUpdateRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	err := s.svc.Campaigns.Update(r.Context(), id, campaign.UpdateFields{
		Name:          req.Name,
		Description:   req.Description,
		TemplateID:    req.TemplateID,
		ArtistID:      req.ArtistID,
		TargetFilters: req.TargetFilters,
		DailyLimit:    req.DailyLimit,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	s.getCampaign(w, r)
}

func (s *Server) activateCampaign(w http.ResponseWriter, r *http.Request) {
	s.campaignTransition(w, r, s.svc.Campaigns.Activate)
}

func (s *Server) completeCampaign(w http.ResponseWriter, r *http.Request) {
	s.campaignTransition(w, r, s.svc.Campaigns.Complete)
}

func (s *Server) campaignTransition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) error) {
	if err := fn(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	s.getCampaign(w, r)
}
