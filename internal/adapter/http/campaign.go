package httpadapter

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"marketplace-ads/internal/core/domain"
)

func (h *Handler) handleSubmitCampaign(w http.ResponseWriter, r *http.Request) {
	var c domain.Campaign
	if err := decodeOptional(r, &c); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}
	if claims, _ := ClaimsFromContext(r.Context()); claims.Role == RoleAdvertiser {
		c.AdvertiserID = claims.AdvertiserID
	}
	out, err := h.Campaigns.Submit(r.Context(), c)
	if err != nil {
		h.fail(w, r, "submit campaign", err)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, out)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, ok := h.ownedCampaign(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, r, http.StatusOK, c)
}

func (h *Handler) handleSubmitDraft(w http.ResponseWriter, r *http.Request) {
	c, ok := h.ownedCampaign(w, r)
	if !ok {
		return
	}
	out, err := h.Campaigns.SubmitDraft(r.Context(), c.ID)
	if err != nil {
		h.fail(w, r, "submit draft", err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, out)
}

// ownedCampaign loads the campaign in the path. Advertisers only see their
// own campaigns; others are reported as missing.
func (h *Handler) ownedCampaign(w http.ResponseWriter, r *http.Request) (*domain.Campaign, bool) {
	return h.ownedCampaignByID(w, r, chi.URLParam(r, "campaignID"))
}

func (h *Handler) ownedCampaignByID(w http.ResponseWriter, r *http.Request, id string) (*domain.Campaign, bool) {
	c, err := h.Reader.GetCampaign(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get campaign", err)
		return nil, false
	}
	if claims, _ := ClaimsFromContext(r.Context()); claims.Role != RoleAdmin && claims.AdvertiserID != c.AdvertiserID {
		h.writeError(w, r, http.StatusNotFound, "campaign "+id+": not found")
		return nil, false
	}
	return c, true
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "approve", h.Campaigns.Approve)
}

func (h *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "pause", h.Campaigns.Pause)
}

func (h *Handler) handleResume(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "resume", h.Campaigns.Resume)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := decodeOptional(r, &body); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}
	out, err := h.Campaigns.Reject(r.Context(), chi.URLParam(r, "campaignID"), body.Reason)
	if err != nil {
		h.fail(w, r, "reject", err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, out)
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context, id string) (*domain.Campaign, error)) {
	out, err := fn(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, out)
}
