package httpadapter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"marketplace-ads/internal/core/port"
	"marketplace-ads/internal/core/revenue"
	"marketplace-ads/internal/metrics"
)

// Deps are the collaborators of the HTTP adapter. Limiter, Metrics,
// Gatherer and Health are optional.
type Deps struct {
	Selector  port.SelectionUseCase
	Tracker   port.TrackingUseCase
	Campaigns port.CampaignUseCase
	// Reader backs campaign lookups and ownership checks.
	Reader   port.CampaignReader
	Revenue  *revenue.Calculator
	Auth     *Authenticator
	Limiter  *rate.Limiter
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Health   func(ctx context.Context) error
}

// Handler is the inbound HTTP adapter. Routes are registered on a
// chi.Router.
type Handler struct {
	Deps
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(deps Deps, logger *slog.Logger) *Handler {
	h := &Handler{Deps: deps, logger: logger}
	r := chi.NewRouter()
	r.Use(requestID, h.recoverer, h.accessLog)

	r.Get("/healthz", h.handleHealth)
	if h.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/slots/{slotID}/select", h.handleSlotSelect)
		r.Get("/placements/{placementType}/campaigns", h.handlePlacementCampaigns)

		r.Route("/track", func(r chi.Router) {
			r.Use(h.rateLimit)
			r.Post("/impression/{campaignID}", h.handleImpression)
			r.Get("/impression/{campaignID}", h.handleImpressionPixel)
			r.Post("/click/{campaignID}", h.handleClick)
			r.Get("/click/{campaignID}", h.handleClickRedirect)
			r.Post("/conversion/{campaignID}", h.handleConversion)
		})

		r.Get("/revenue/estimate", h.handleRevenueEstimate)

		r.Group(func(r chi.Router) {
			r.Use(h.Auth.Require(RoleAdvertiser, RoleAdmin))
			r.Get("/stats/overview", h.handleStatsOverview)
			r.Post("/campaigns", h.handleSubmitCampaign)
			r.Get("/campaigns/{campaignID}", h.handleGetCampaign)
			r.Post("/campaigns/{campaignID}/submit", h.handleSubmitDraft)
		})

		r.Route("/admin/campaigns/{campaignID}", func(r chi.Router) {
			r.Use(h.Auth.Require(RoleAdmin))
			r.Post("/approve", h.handleApprove)
			r.Post("/reject", h.handleReject)
			r.Post("/pause", h.handlePause)
			r.Post("/resume", h.handleResume)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.Health != nil {
		if err := h.Health(r.Context()); err != nil {
			h.logger.WarnContext(r.Context(), "health check failed", slog.Any("error", err))
			h.writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
