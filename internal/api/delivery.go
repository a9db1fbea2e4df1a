package api

import (
	"net/http"

	"github.com/boostify/outreach/internal/pkg/httputil"
	"github.com/boostify/outreach/internal/service/delivery"
)

// getQuota reports today's remaining sends.
//
//	GET /api/outreach/quota?userId=
func (s *Server) getQuota(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		httputil.BadRequest(w, "userId is required")
		return
	}
	st, err := s.svc.Quota.Remaining(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, st)
}

// sendSingle sends one email. A provider failure answers 500 with the
// result body; the attempt is already logged.
//
//	POST /api/outreach/send-single
func (s *Server) sendSingle(w http.ResponseWriter, r *http.Request) {
	var req delivery.SingleRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	res, err := s.svc.Delivery.SendSingle(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !res.Success {
		httputil.JSON(w, http.StatusInternalServerError, res)
		return
	}
	httputil.OK(w, res)
}

// sendBatch sends to each listed contact in order, up to today's quota.
//
//	POST /api/outreach/send-batch
func (s *Server) sendBatch(w http.ResponseWriter, r *http.Request) {
	var req delivery.BatchRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if len(req.ContactIDs) == 0 {
		httputil.BadRequest(w, delivery.ErrNoContacts.Error())
		return
	}
	if !s.valid(w, &req) {
		return
	}
	res, err := s.svc.Delivery.SendBatch(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, res)
}

// emailLog returns the send history, newest first.
//
//	GET /api/outreach/email-log?userId=&page=&limit=
func (s *Server) emailLog(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r, 50, 200)
	logs, total, err := s.svc.Delivery.EmailLog(r.Context(), r.URL.Query().Get("userId"), p.Limit, p.Offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]interface{}{
		"logs":       logs,
		"pagination": NewPaginationMeta(p, total),
	})
}
