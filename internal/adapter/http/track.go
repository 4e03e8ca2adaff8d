package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"marketplace-ads/internal/core/domain"
	"marketplace-ads/internal/core/port"
)

// trackRequest reads the event context from the JSON body of POST
// requests or from the query string of the URLs handed out by selection.
func trackRequest(r *http.Request) (port.TrackRequest, error) {
	var req port.TrackRequest
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		req = port.TrackRequest{
			ImpressionID: q.Get("impression_id"),
			ClickID:      q.Get("click_id"),
			SlotID:       q.Get("slot_id"),
			Placement:    domain.PlacementType(q.Get("placement")),
			Position:     q.Get("position"),
			VendorID:     q.Get("vendor_id"),
			Category:     q.Get("category"),
			DeviceType:   q.Get("device"),
		}
	} else if err := decodeOptional(r, &req); err != nil {
		return req, err
	}
	if req.UserAgent == "" {
		req.UserAgent = r.UserAgent()
	}
	return req, nil
}

func (h *Handler) handleImpression(w http.ResponseWriter, r *http.Request) {
	req, err := trackRequest(r)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}
	rcpt, err := h.Tracker.RecordImpression(r.Context(), chi.URLParam(r, "campaignID"), req)
	if err != nil {
		h.fail(w, r, "record impression", err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, rcpt)
}

// handleImpressionPixel serves the tracking URL fired when a creative
// renders.
func (h *Handler) handleImpressionPixel(w http.ResponseWriter, r *http.Request) {
	req, _ := trackRequest(r)
	if _, err := h.Tracker.RecordImpression(r.Context(), chi.URLParam(r, "campaignID"), req); err != nil {
		h.fail(w, r, "record impression", err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleClick(w http.ResponseWriter, r *http.Request) {
	req, err := trackRequest(r)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}
	rcpt, err := h.Tracker.RecordClick(r.Context(), chi.URLParam(r, "campaignID"), req)
	if err != nil {
		h.fail(w, r, "record click", err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, rcpt)
}

// handleClickRedirect records a click and redirects the viewer to the
// creative's destination.
func (h *Handler) handleClickRedirect(w http.ResponseWriter, r *http.Request) {
	req, _ := trackRequest(r)
	rcpt, err := h.Tracker.RecordClick(r.Context(), chi.URLParam(r, "campaignID"), req)
	if err != nil {
		h.fail(w, r, "record click", err)
		return
	}
	if rcpt.DestinationURL == "" {
		h.writeError(w, r, http.StatusNotFound, "campaign has no destination")
		return
	}
	http.Redirect(w, r, rcpt.DestinationURL, http.StatusFound)
}

func (h *Handler) handleConversion(w http.ResponseWriter, r *http.Request) {
	req, err := trackRequest(r)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}
	rcpt, err := h.Tracker.RecordConversion(r.Context(), chi.URLParam(r, "campaignID"), req)
	if err != nil {
		h.fail(w, r, "record conversion", err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, rcpt)
}
