package httpadapter

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"marketplace-ads/internal/core/domain"
	"marketplace-ads/internal/core/port"
)

// handleSlotSelect draws a campaign for a slot. The optional body is the
// display context of the page. No eligible campaign yields 204 No Content.
func (h *Handler) handleSlotSelect(w http.ResponseWriter, r *http.Request) {
	var dc domain.DisplayContext
	if err := decodeOptional(r, &dc); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}
	if dc.UserAgent == "" {
		dc.UserAgent = r.UserAgent()
	}

	sel, err := h.Selector.SelectForSlot(r.Context(), chi.URLParam(r, "slotID"), dc)
	if err != nil {
		h.fail(w, r, "select for slot", err)
		return
	}
	if sel == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, r, http.StatusOK, sel)
}

// handlePlacementCampaigns lists campaigns for a simplified placement.
func (h *Handler) handlePlacementCampaigns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := port.PlacementQuery{
		VendorID:  q.Get("vendor_id"),
		Category:  q.Get("category"),
		Device:    q.Get("device"),
		Position:  q.Get("position"),
		StoreType: q.Get("store_type"),
		Location:  domain.Location{State: q.Get("state"), City: q.Get("city")},
	}
	if v := q.Get("store_rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			h.writeError(w, r, http.StatusBadRequest, "invalid store_rating")
			return
		}
		req.StoreRating = rating
	}
	if v := q.Get("max_count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			h.writeError(w, r, http.StatusBadRequest, "invalid max_count")
			return
		}
		req.MaxCount = n
	}

	placement := domain.PlacementType(chi.URLParam(r, "placementType"))
	campaigns, err := h.Selector.SelectForPlacement(r.Context(), placement, req)
	if err != nil {
		h.fail(w, r, "select for placement", err)
		return
	}
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{"campaigns": campaigns})
}
