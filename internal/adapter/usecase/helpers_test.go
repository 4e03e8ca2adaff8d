package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"marketplace-ads/internal/async"
	"marketplace-ads/internal/core/domain"
	"marketplace-ads/internal/metrics"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func testRunner() *async.Runner {
	return async.NewRunner(discardLogger(), time.Second, nil)
}

func waitTasks(t *testing.T, r *async.Runner) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, r.Wait(ctx))
}

func activeCampaign(id string, placement domain.PlacementType, bidding domain.BiddingType, bid, total string) domain.Campaign {
	return domain.Campaign{
		ID:           id,
		AdvertiserID: "adv-1",
		Name:         "Campaign " + id,
		Status:       domain.StatusActive,
		Budget:       domain.NewBudget(dec(total), decimal.Zero),
		Bidding:      domain.Bidding{Type: bidding, BidAmount: dec(bid)},
		Placement:    domain.Placement{Type: placement},
		Creative:     domain.Creative{Title: "Ad " + id, DestinationURL: "https://shop.example/" + id},
		Schedule:     domain.Schedule{StartDate: testNow.AddDate(0, 0, -1), EndDate: testNow.AddDate(0, 1, 0), Active: true},
		CreatedAt:    testNow.AddDate(0, -1, 0),
	}
}

// fixedRand returns its values in order and then repeats the last one.
type fixedRand struct {
	vals []float64
	i    int
}

func (f *fixedRand) Float64() float64 {
	v := f.vals[min(f.i, len(f.vals)-1)]
	f.i++
	return v
}
