package httpadapter

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-ads/internal/core/domain"
	"marketplace-ads/internal/core/port"
)

// handleStatsOverview returns aggregated statistics for campaigns over a
// period. It accepts optional `from`, `to` (RFC3339) and `campaign_id` query
// parameters; the period defaults to the last 24 hours. Advertisers only see
// their own campaigns.
func (h *Handler) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	var (
		q       = r.URL.Query()
		fromStr = q.Get("from")
		toStr   = q.Get("to")
		req     port.StatsReq
		err     error
	)

	if toStr != "" {
		req.To, err = time.Parse(time.RFC3339, toStr)
		if err != nil {
			h.writeError(w, r, http.StatusBadRequest, "invalid 'to' timestamp")
			return
		}
	} else {
		req.To = time.Now()
	}

	if fromStr != "" {
		req.From, err = time.Parse(time.RFC3339, fromStr)
		if err != nil {
			h.writeError(w, r, http.StatusBadRequest, "invalid 'from' timestamp")
			return
		}
	} else {
		req.From = req.To.Add(-24 * time.Hour)
	}

	if cid := q.Get("campaign_id"); cid != "" {
		if _, ok := h.ownedCampaignByID(w, r, cid); !ok {
			return
		}
		req.CampaignID = &cid
	}
	if claims, _ := ClaimsFromContext(r.Context()); claims.Role != RoleAdmin {
		req.AdvertiserID = &claims.AdvertiserID
	}

	stats, err := h.Tracker.GetStats(r.Context(), req)
	if err != nil {
		h.fail(w, r, "stats", err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, stats)
}

// handleRevenueEstimate prices a batch of impressions (rate is a CPM) or
// clicks (rate is a CPC) and splits it for the placement.
func (h *Handler) handleRevenueEstimate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	placement := domain.PlacementType(q.Get("placement"))
	if !placement.Valid() {
		h.writeError(w, r, http.StatusBadRequest, "invalid placement")
		return
	}
	rate, err := decimal.NewFromString(q.Get("rate"))
	if err != nil || rate.IsNegative() {
		h.writeError(w, r, http.StatusBadRequest, "invalid rate")
		return
	}

	count := func(name string) (int64, bool) {
		v := q.Get(name)
		if v == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil && n >= 0
	}
	if n, ok := count("impressions"); ok {
		h.writeJSON(w, r, http.StatusOK, h.Revenue.CalculateImpressionRevenue(n, rate, placement))
		return
	}
	if n, ok := count("clicks"); ok {
		h.writeJSON(w, r, http.StatusOK, h.Revenue.CalculateClickRevenue(n, rate, placement))
		return
	}
	h.writeError(w, r, http.StatusBadRequest, "one of impressions or clicks is required")
}
