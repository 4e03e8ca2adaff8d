package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Selection metrics
	SelectionsTotal   *prometheus.CounterVec
	SelectionDuration *prometheus.HistogramVec
	SelectionEvicted  prometheus.Counter

	// Ledger metrics
	ChargesTotal     *prometheus.CounterVec
	ChargeRetries    prometheus.Counter
	AmountCharged    *prometheus.CounterVec
	PlatformRevenue  *prometheus.CounterVec
	VendorRevenue    *prometheus.CounterVec
	BudgetsExhausted prometheus.Counter

	// Background task metrics
	BackgroundTasks *prometheus.CounterVec
}

// New registers the collectors with reg. Tests pass a fresh
// prometheus.NewRegistry; main passes prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		SelectionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ads_selections_total",
				Help: "Total number of ad selections by placement and outcome",
			},
			[]string{"placement", "outcome"},
		),

		SelectionDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ads_selection_duration_seconds",
				Help:    "Ad selection duration in seconds",
				Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"placement"},
		),

		SelectionEvicted: f.NewCounter(
			prometheus.CounterOpts{
				Name: "ads_selection_evictions_total",
				Help: "Campaigns dropped after the budget re-check during selection",
			},
		),

		ChargesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ads_charges_total",
				Help: "Total number of ledger charges by event kind and result",
			},
			[]string{"kind", "result"},
		),

		ChargeRetries: f.NewCounter(
			prometheus.CounterOpts{
				Name: "ads_charge_retries_total",
				Help: "Ledger charges retried after a concurrency conflict",
			},
		),

		AmountCharged: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ads_amount_charged_total",
				Help: "Total amount charged to campaign budgets",
			},
			[]string{"placement"},
		),

		PlatformRevenue: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ads_platform_revenue_total",
				Help: "Total revenue retained by the platform",
			},
			[]string{"placement"},
		),

		VendorRevenue: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ads_vendor_revenue_total",
				Help: "Total revenue shared with hosting vendors",
			},
			[]string{"placement"},
		),

		BudgetsExhausted: f.NewCounter(
			prometheus.CounterOpts{
				Name: "ads_budgets_exhausted_total",
				Help: "Campaigns completed because their budget ran out",
			},
		),

		BackgroundTasks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ads_background_tasks_total",
				Help: "Best-effort background tasks by name and result",
			},
			[]string{"task", "result"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}

// RecordSelection counts a selection. outcome is "served", "empty" or "error".
func (m *Metrics) RecordSelection(placement, outcome string, duration time.Duration) {
	m.SelectionsTotal.WithLabelValues(placement, outcome).Inc()
	m.SelectionDuration.WithLabelValues(placement).Observe(duration.Seconds())
}

func (m *Metrics) RecordEviction() {
	m.SelectionEvicted.Inc()
}

// RecordCharge counts a ledger charge and, when money moved, the amounts.
func (m *Metrics) RecordCharge(kind, placement, result string, charged, platform, vendor float64) {
	m.ChargesTotal.WithLabelValues(kind, result).Inc()
	if charged > 0 {
		m.AmountCharged.WithLabelValues(placement).Add(charged)
		m.PlatformRevenue.WithLabelValues(placement).Add(platform)
		m.VendorRevenue.WithLabelValues(placement).Add(vendor)
	}
}

func (m *Metrics) RecordChargeRetry() {
	m.ChargeRetries.Inc()
}

func (m *Metrics) RecordBudgetExhausted() {
	m.BudgetsExhausted.Inc()
}

func (m *Metrics) RecordBackgroundTask(task, result string) {
	m.BackgroundTasks.WithLabelValues(task, result).Inc()
}
