package delivery

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"github.com/boostify/outreach/internal/pkg/logger"
	"github.com/boostify/outreach/internal/pkg/metrics"
)

// BatchRequest asks for one email to each listed contact, in order.
type BatchRequest struct {
	UserID     string   `json:"userId" validate:"required"`
	ContactIDs []string `json:"contactIds" validate:"required,min=1,dive,required"`
	TemplateID string   `json:"templateId"`
	ArtistID   string   `json:"artistId"`
	CampaignID string   `json:"campaignId"`
}

// BatchResult summarizes a batch. Queued contacts were not attempted.
type BatchResult struct {
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
	Remaining int `json:"remaining"`
	Queued    int `json:"queued"`
}

// SendBatch sends to at most the caller's remaining quota of contacts,
// strictly one after another with the configured pause between sends.
// Contacts past the clamp are reported as queued, as are the unattempted
// rest when the quota runs out mid-batch or ctx is cancelled. Per-contact
// failures are counted and never abort the batch.
func (s *Service) SendBatch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if req.UserID == "" {
		return nil, ErrUserRequired
	}
	if len(req.ContactIDs) == 0 {
		return nil, ErrNoContacts
	}

	st, err := s.Quota.Remaining(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	toSend := min(len(req.ContactIDs), st.Remaining)
	if toSend <= 0 {
		metrics.QuotaRejections.Inc()
		return nil, &QuotaError{Status: st}
	}

	res := &BatchResult{Queued: len(req.ContactIDs) - toSend}
	log := logger.With("user_id", req.UserID, "batch_size", len(req.ContactIDs))
	limiter := rate.NewLimiter(rate.Every(s.cfg.SendInterval), 1)

loop:
	for i, id := range req.ContactIDs[:toSend] {
		if err := limiter.Wait(ctx); err != nil {
			res.Queued += toSend - i
			log.Warn("batch interrupted", "attempted", i, "error", err)
			break
		}

		r, err := s.SendSingle(ctx, SingleRequest{
			UserID:     req.UserID,
			ContactID:  id,
			TemplateID: req.TemplateID,
			ArtistID:   req.ArtistID,
			CampaignID: req.CampaignID,
		})
		switch {
		case errors.Is(err, ErrQuotaExceeded):
			res.Queued += toSend - i
			log.Info("quota reached mid-batch", "attempted", i)
			break loop
		case err != nil:
			res.Failed++
			log.Warn("batch contact failed", "contact_id", id, "error", err)
		case r.Success:
			res.Sent++
		default:
			res.Failed++
		}
	}
	metrics.BatchQueued.Add(float64(res.Queued))

	if now, err := s.Quota.Remaining(context.WithoutCancel(ctx), req.UserID); err == nil {
		res.Remaining = now.Remaining
	}
	log.Info("batch finished", "sent", res.Sent, "failed", res.Failed, "queued", res.Queued)
	return res, nil
}
