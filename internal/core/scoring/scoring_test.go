package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-ads/internal/core/domain"
)

func TestDrawFollowsWeights(t *testing.T) {
	rnd := NewLockedRand(42)
	weights := []float64{0.8, 0.2}

	var first int
	for i := 0; i < 1000; i++ {
		if Draw(weights, rnd.Float64()) == 0 {
			first++
		}
	}
	assert.InDelta(t, 800, first, 40)
}

func TestDrawConverges(t *testing.T) {
	rnd := NewLockedRand(7)
	weights := []float64{1, 3, 0, 6}
	counts := make([]int, len(weights))

	const n = 10000
	for i := 0; i < n; i++ {
		counts[Draw(weights, rnd.Float64())]++
	}
	assert.Zero(t, counts[2], "zero weight must never win")
	assert.InDelta(t, 0.1, float64(counts[0])/n, 0.02)
	assert.InDelta(t, 0.3, float64(counts[1])/n, 0.02)
	assert.InDelta(t, 0.6, float64(counts[3])/n, 0.02)
}

func TestDrawEdgeCases(t *testing.T) {
	assert.Equal(t, -1, Draw(nil, 0.5))
	assert.Equal(t, 0, Draw([]float64{5}, 0.99))

	// all zero falls back to a uniform pick
	assert.Equal(t, 0, Draw([]float64{0, 0, 0, 0}, 0))
	assert.Equal(t, 2, Draw([]float64{0, 0, 0, 0}, 0.6))
	assert.Equal(t, 3, Draw([]float64{0, 0, 0, 0}, 0.999999))

	assert.Equal(t, 1, Draw([]float64{-1, 2}, 0))
	assert.Equal(t, 1, Draw([]float64{1, 1}, math.Nextafter(1, 0)))
}

func TestLockedRandIsDeterministic(t *testing.T) {
	a, b := NewLockedRand(3), NewLockedRand(3)
	for i := 0; i < 10; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
}

func slotCampaign(bid, total, remaining string, impressions, clicks int64) *domain.Campaign {
	return &domain.Campaign{
		Bidding: domain.Bidding{BidAmount: decimal.RequireFromString(bid)},
		Budget: domain.Budget{
			Total:     decimal.RequireFromString(total),
			Remaining: decimal.RequireFromString(remaining),
		},
		Stats: domain.Stats{Impressions: impressions, Clicks: clicks},
	}
}

func TestSlotWeight(t *testing.T) {
	pricing := domain.SlotPricing{BaseRate: decimal.NewFromInt(10)}

	tests := []struct {
		name string
		c    *domain.Campaign
		r    float64
		want float64
	}{
		// bid 10/10 -> 0.5, ctr 0, budget 1
		{"at base rate", slotCampaign("10", "100", "100", 0, 0), 0, 0.4*0.5 + 0.2},
		// bid capped at 2x, ctr 10% capped at 1, half budget, r = 1
		{"capped", slotCampaign("50", "100", "50", 100, 10), 1, 0.4 + 0.3 + 0.1 + 0.1},
		{"ctr 2.5%", slotCampaign("5", "100", "0", 1000, 25), 0.5, 0.4*0.25 + 0.3*0.5 + 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SlotWeight(tt.c, pricing, tt.r), 1e-9)
		})
	}
}

func TestSlotWeightDegenerateInputs(t *testing.T) {
	c := slotCampaign("3", "0", "0", 0, 0)
	// no base rate: full bid score; no total: zero budget score
	assert.InDelta(t, 0.4, SlotWeight(c, domain.SlotPricing{}, 0), 1e-9)
	assert.InDelta(t, 0.4, SlotWeight(c, domain.SlotPricing{BaseRate: decimal.NewFromInt(-1)}, 0), 1e-9)
}

func TestPlacementPriority(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	tiers := DefaultTiers()

	tests := []struct {
		name    string
		total   string
		imp     int64
		clicks  int64
		created time.Time
		want    float64
	}{
		{"baseline", "500", 0, 0, now.AddDate(0, -1, 0), 1},
		{"first tier", "1000", 0, 0, now.AddDate(0, -1, 0), 2},
		{"between tiers", "7500", 0, 0, now.AddDate(0, -1, 0), 3},
		{"top tier", "250000", 0, 0, now.AddDate(0, -1, 0), 6},
		{"ctr 1%", "500", 100, 1, now.AddDate(0, -1, 0), 1.5},
		{"ctr 2%", "500", 100, 2, now.AddDate(0, -1, 0), 2},
		{"ctr 5%", "500", 100, 5, now.AddDate(0, -1, 0), 3},
		{"new campaign", "500", 0, 0, now.AddDate(0, 0, -3), 1.5},
		{"everything", "100000", 100, 9, now, 1 + 5 + 2 + 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := slotCampaign("1", tt.total, tt.total, tt.imp, tt.clicks)
			c.CreatedAt = tt.created
			assert.InDelta(t, tt.want, PlacementPriority(c, tiers, now), 1e-9)
		})
	}
}

func TestPlacementPriorityHonoursFiveTiers(t *testing.T) {
	tiers := Tiers{BudgetThresholds: []decimal.Decimal{
		decimal.NewFromInt(1), decimal.NewFromInt(2), decimal.NewFromInt(3),
		decimal.NewFromInt(4), decimal.NewFromInt(5), decimal.NewFromInt(6),
	}}
	c := slotCampaign("1", "10", "10", 0, 0)
	assert.InDelta(t, 6.0, PlacementPriority(c, tiers, time.Now()), 1e-9)
}
