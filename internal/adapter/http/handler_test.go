package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"marketplace-ads/internal/adapter/memory"
	"marketplace-ads/internal/adapter/usecase"
	"marketplace-ads/internal/async"
	"marketplace-ads/internal/core/domain"
	"marketplace-ads/internal/core/eligibility"
	"marketplace-ads/internal/core/port"
	"marketplace-ads/internal/core/revenue"
	"marketplace-ads/internal/core/scoring"
	"marketplace-ads/internal/metrics"
)

const testSecret = "test-secret"

type fixture struct {
	handler *Handler
	store   *memory.Store
	auth    *Authenticator
	tasks   *async.Runner
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func campaign(id, advertiser string, placement domain.PlacementType, bidding domain.BiddingType, bid, total string) domain.Campaign {
	now := time.Now()
	return domain.Campaign{
		ID:           id,
		AdvertiserID: advertiser,
		Name:         "Campaign " + id,
		Status:       domain.StatusActive,
		Budget:       domain.NewBudget(dec(total), decimal.Zero),
		Bidding:      domain.Bidding{Type: bidding, BidAmount: dec(bid)},
		Placement:    domain.Placement{Type: placement},
		Creative:     domain.Creative{Title: "Ad " + id, DestinationURL: "https://shop.example/" + id},
		Schedule:     domain.Schedule{StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 1, 0), Active: true},
		Lifecycle:    domain.Lifecycle{FundsReserved: true},
		CreatedAt:    now.AddDate(0, -1, 0),
	}
}

func newFixture(t *testing.T, limiter *rate.Limiter) *fixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	tasks := async.NewRunner(log, time.Second, nil)

	st := memory.New()
	st.PutAdvertiser(domain.Advertiser{ID: "adv-1", AccountBalance: dec("5000")})
	st.PutAdvertiser(domain.Advertiser{ID: "adv-poor", AccountBalance: dec("10")})
	for _, c := range []domain.Campaign{
		campaign("c-home", "adv-1", domain.PlacementHomepage, domain.BiddingCPM, "5", "1000"),
		campaign("c-vendor", "adv-1", domain.PlacementVendorStore, domain.BiddingCPC, "2", "100"),
		campaign("c-small", "adv-1", domain.PlacementCategory, domain.BiddingCPM, "60000", "60"),
	} {
		require.NoError(t, st.PutCampaign(c))
	}
	st.PutSlot(domain.Slot{
		ID:            "slot-1",
		OwnerVendorID: "v1",
		PlacementType: domain.PlacementVendorStore,
		Position:      "sidebar",
		Pricing:       domain.SlotPricing{BaseRate: dec("2"), VendorShare: dec("0.4")},
		Availability:  domain.Availability{Enabled: true},
	})
	st.PutSlot(domain.Slot{ID: "slot-off", PlacementType: domain.PlacementHomepage})

	calc := revenue.NewCalculator(revenue.DefaultConfig())
	ledger := usecase.NewLedger(st, st, nil, nil, tasks, m, log, usecase.LedgerConfig{MaxRetries: 1, Location: time.UTC})
	selector := usecase.NewSelector(st, st, eligibility.New(nil, time.UTC), scoring.NewLockedRand(7), tasks, m, log,
		usecase.SelectorConfig{BaseURL: "https://ads.example", MaxCount: 10, Tiers: scoring.DefaultTiers()})
	tracker := usecase.NewTracker(st, st, st, ledger, calc, log)

	auth := NewAuthenticator(testSecret)
	h := NewHandler(Deps{
		Selector:  selector,
		Tracker:   tracker,
		Campaigns: ledger,
		Reader:    st,
		Revenue:   calc,
		Auth:      auth,
		Limiter:   limiter,
		Metrics:   m,
		Gatherer:  reg,
	}, log)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = tasks.Wait(ctx)
	})
	return &fixture{handler: h, store: st, auth: auth, tasks: tasks}
}

func (f *fixture) do(t *testing.T, method, target string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.Router().ServeHTTP(rec, req)
	return rec
}

func (f *fixture) token(t *testing.T, role, advertiserID string) string {
	t.Helper()
	tok, err := f.auth.Issue(role, advertiserID, time.Hour)
	require.NoError(t, err)
	return tok
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestSlotSelectionClickAndStats(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/api/v1/slots/slot-1/select", domain.DisplayContext{Device: "desktop"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sel := decode[port.SlotSelection](t, rec)
	assert.Equal(t, "c-vendor", sel.Campaign.ID)
	_, err := uuid.Parse(sel.ImpressionID)
	require.NoError(t, err)

	click, err := url.Parse(sel.ClickURL)
	require.NoError(t, err)
	assert.Equal(t, "ads.example", click.Host)

	rec = f.do(t, http.MethodGet, click.RequestURI(), nil, "")
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	assert.Equal(t, "https://shop.example/c-vendor", rec.Header().Get("Location"))

	rec = f.do(t, http.MethodGet, "/api/v1/stats/overview?campaign_id=c-vendor", nil, f.token(t, RoleAdvertiser, "adv-1"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decode[port.StatsResp](t, rec)
	assert.Equal(t, int64(1), stats.Clicks)
	assert.True(t, stats.Spend.Equal(dec("2")), "spend %s", stats.Spend)
	assert.True(t, stats.VendorRevenue.Equal(dec("0.8")), "vendor %s", stats.VendorRevenue)
}

func TestStatsOverviewIsScopedToOwner(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/api/v1/track/click/c-vendor", port.TrackRequest{}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/v1/stats/overview", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	poor := f.token(t, RoleAdvertiser, "adv-poor")
	rec = f.do(t, http.MethodGet, "/api/v1/stats/overview?campaign_id=c-vendor", nil, poor)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/stats/overview", nil, poor)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decode[port.StatsResp](t, rec)
	assert.Zero(t, stats.Clicks)
	assert.True(t, stats.Spend.IsZero(), "spend %s", stats.Spend)

	for _, tok := range []string{f.token(t, RoleAdvertiser, "adv-1"), f.token(t, RoleAdmin, "")} {
		rec = f.do(t, http.MethodGet, "/api/v1/stats/overview", nil, tok)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		stats = decode[port.StatsResp](t, rec)
		assert.Equal(t, int64(1), stats.Clicks)
	}
}

func TestSlotSelectionOutcomes(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/api/v1/slots/slot-off/select", nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/slots/nope/select", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/slot-1/select", strings.NewReader("{broken"))
	rr := httptest.NewRecorder()
	f.handler.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPlacementCampaigns(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/placements/homepage/campaigns?device=mobile&max_count=3", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Campaigns []domain.Campaign `json:"campaigns"`
	}](t, rec)
	require.Len(t, body.Campaigns, 1)
	assert.Equal(t, "c-home", body.Campaigns[0].ID)

	rec = f.do(t, http.MethodGet, "/api/v1/placements/billboard/campaigns", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/placements/homepage/campaigns?max_count=many", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImpressionExhaustsBudget(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/api/v1/track/impression/c-small", port.TrackRequest{Placement: domain.PlacementCategory}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rcpt := decode[port.ImpressionReceipt](t, rec)
	assert.True(t, rcpt.Cost.Equal(dec("60")))

	rec = f.do(t, http.MethodPost, "/api/v1/track/impression/c-small", nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "budget exhausted")

	rec = f.do(t, http.MethodPost, "/api/v1/track/impression/c-home", port.TrackRequest{ImpressionID: "abc"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/track/impression/c-home?placement=homepage", nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTrackingIsRateLimited(t *testing.T) {
	f := newFixture(t, rate.NewLimiter(rate.Every(time.Hour), 1))

	rec := f.do(t, http.MethodPost, "/api/v1/track/impression/c-home", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/track/impression/c-home", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// selection is not limited
	rec = f.do(t, http.MethodPost, "/api/v1/slots/slot-1/select", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRevenueEstimate(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/revenue/estimate?impressions=1000&rate=100&placement=vendor_store", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decode[revenue.Report](t, rec)
	assert.True(t, report.TotalAdSpend.Equal(dec("100")))
	assert.True(t, report.PlatformRevenue.Equal(dec("60")))
	assert.True(t, report.VendorRevenue.Equal(dec("40")))

	rec = f.do(t, http.MethodGet, "/api/v1/revenue/estimate?clicks=10&rate=0.5&placement=homepage", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[revenue.Report](t, rec).PlatformRevenue.Equal(dec("5")))

	for _, q := range []string{
		"impressions=10&rate=1&placement=nowhere",
		"impressions=10&rate=abc&placement=homepage",
		"rate=1&placement=homepage",
	} {
		rec = f.do(t, http.MethodGet, "/api/v1/revenue/estimate?"+q, nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func submission(advertiser, total string) domain.Campaign {
	c := campaign("", advertiser, domain.PlacementHomepage, domain.BiddingCPM, "4", total)
	c.Status = ""
	c.Lifecycle = domain.Lifecycle{}
	return c
}

func TestCampaignLifecycle(t *testing.T) {
	f := newFixture(t, nil)
	advertiser := f.token(t, RoleAdvertiser, "adv-1")
	admin := f.token(t, RoleAdmin, "")

	rec := f.do(t, http.MethodPost, "/api/v1/campaigns", submission("adv-1", "500"), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// advertisers cannot submit on behalf of someone else
	rec = f.do(t, http.MethodPost, "/api/v1/campaigns", submission("adv-poor", "500"), advertiser)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Campaign](t, rec)
	assert.Equal(t, "adv-1", created.AdvertiserID)
	assert.Equal(t, domain.StatusPendingReview, created.Status)
	assert.False(t, created.Lifecycle.FundsReserved)

	approve := fmt.Sprintf("/api/v1/admin/campaigns/%s/approve", created.ID)
	rec = f.do(t, http.MethodPost, approve, nil, advertiser)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPost, approve, nil, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.StatusActive, decode[domain.Campaign](t, rec).Status)
	adv, _ := f.store.Advertiser("adv-1")
	assert.True(t, adv.AccountBalance.Equal(dec("4500")))

	rec = f.do(t, http.MethodPost, approve, nil, admin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/admin/campaigns/"+created.ID+"/pause", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.StatusPaused, decode[domain.Campaign](t, rec).Status)

	rec = f.do(t, http.MethodGet, "/api/v1/campaigns/"+created.ID, nil, advertiser)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodGet, "/api/v1/campaigns/"+created.ID, nil, f.token(t, RoleAdvertiser, "adv-poor"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDraftSubmissionAndRejection(t *testing.T) {
	f := newFixture(t, nil)
	advertiser := f.token(t, RoleAdvertiser, "adv-1")
	admin := f.token(t, RoleAdmin, "")

	draft := submission("adv-1", "100")
	draft.Status = domain.StatusDraft
	rec := f.do(t, http.MethodPost, "/api/v1/campaigns", draft, advertiser)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Campaign](t, rec)
	assert.Equal(t, domain.StatusDraft, created.Status)

	rec = f.do(t, http.MethodPost, "/api/v1/campaigns/"+created.ID+"/submit", nil, advertiser)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.StatusPendingReview, decode[domain.Campaign](t, rec).Status)

	rec = f.do(t, http.MethodPost, "/api/v1/admin/campaigns/"+created.ID+"/reject", map[string]string{"reason": "blurry image"}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	rejected := decode[domain.Campaign](t, rec)
	assert.Equal(t, domain.StatusRejected, rejected.Status)
	assert.Equal(t, "blurry image", rejected.Lifecycle.RejectionReason)
}

func TestApproveWithInsufficientBalance(t *testing.T) {
	f := newFixture(t, nil)
	admin := f.token(t, RoleAdmin, "")

	rec := f.do(t, http.MethodPost, "/api/v1/campaigns", submission("adv-poor", "100"), admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Campaign](t, rec)

	rec = f.do(t, http.MethodPost, "/api/v1/admin/campaigns/"+created.ID+"/approve", nil, admin)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	got, err := f.store.GetCampaign(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingReview, got.Status)
}

func TestAuthRejectsBadTokens(t *testing.T) {
	f := newFixture(t, nil)

	other, err := NewAuthenticator("other-secret").Issue(RoleAdmin, "", time.Hour)
	require.NoError(t, err)
	expired, err := f.auth.Issue(RoleAdmin, "", -time.Minute)
	require.NoError(t, err)

	for name, tok := range map[string]string{"foreign signature": other, "expired": expired, "garbage": "abc.def.ghi"} {
		rec := f.do(t, http.MethodPost, "/api/v1/admin/campaigns/c-home/pause", nil, tok)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}

	_, err = f.auth.Parse(f.token(t, "superuser", ""))
	assert.Error(t, err)
	_, err = f.auth.Parse(f.token(t, RoleAdvertiser, ""))
	assert.Error(t, err)
}

type panickingSelector struct{ port.SelectionUseCase }

func (panickingSelector) SelectForSlot(context.Context, string, domain.DisplayContext) (*port.SlotSelection, error) {
	panic("boom")
}

func TestPanicIsRecovered(t *testing.T) {
	h := NewHandler(Deps{Selector: panickingSelector{}}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/s/select", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	assert.Contains(t, rec.Body.String(), "req-42")
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t, nil)
	f.do(t, http.MethodPost, "/api/v1/slots/slot-1/select", nil, "")

	rec := f.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), `endpoint="/api/v1/slots/{slotID}/select"`)

	f.handler.Health = func(context.Context) error { return errors.New("db down") }
	rec = f.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("record click: %w", domain.ErrInactiveCampaign), http.StatusConflict},
		{domain.ErrBudgetExhausted, http.StatusConflict},
		{fmt.Errorf("record click: %w", domain.ErrDailyLimitReached), http.StatusConflict},
		{domain.ErrInsufficientAdvertiserBalance, http.StatusPaymentRequired},
		{domain.ErrConcurrencyConflict, http.StatusServiceUnavailable},
		{domain.ErrInvalidArgument, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
