// Package scoring ranks eligible campaigns. It has two strategies: SlotWeight
// for slots with their own pricing, and PlacementPriority for simplified
// placements that carry no pricing context. Their scales are not comparable
// and callers pick one per request.
package scoring

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-ads/internal/core/domain"
)

// Slot weight factors; they sum to 1.
const (
	BidFactor         = 0.4
	PerformanceFactor = 0.3
	BudgetFactor      = 0.2
	RandomFactor      = 0.1

	// maxBidMultiple caps the influence of large bids at this multiple of
	// the slot base rate.
	maxBidMultiple = 2.0
	// targetCTR is the CTR (percent) that earns the full performance score.
	targetCTR = 5.0
)

// SlotWeight returns the relative weight of c in a slot priced with pricing.
// r must be a uniform draw from [0,1).
func SlotWeight(c *domain.Campaign, pricing domain.SlotPricing, r float64) float64 {
	return BidFactor*BidScore(c.Bidding.BidAmount, pricing.BaseRate) +
		PerformanceFactor*PerformanceScore(c.Stats.CTR()) +
		BudgetFactor*BudgetScore(c.Budget) +
		RandomFactor*clamp01(r)
}

// BidScore is min(bid/baseRate, 2)/2. A slot without a base rate gives every
// bid the full score.
func BidScore(bid, baseRate decimal.Decimal) float64 {
	if !baseRate.IsPositive() {
		return 1
	}
	ratio := bid.Div(baseRate).InexactFloat64()
	return clamp01(math.Min(ratio, maxBidMultiple) / maxBidMultiple)
}

// PerformanceScore is min(ctr/5, 1) for a CTR in percent.
func PerformanceScore(ctr float64) float64 {
	return clamp01(ctr / targetCTR)
}

// BudgetScore is the fraction of the budget still available.
func BudgetScore(b domain.Budget) float64 {
	if !b.Total.IsPositive() {
		return 0
	}
	return clamp01(b.Remaining.Div(b.Total).InexactFloat64())
}

// Tiers configures PlacementPriority.
type Tiers struct {
	// BudgetThresholds add one point each when the campaign total reaches
	// them. At most five are honoured.
	BudgetThresholds []decimal.Decimal
	// NewCampaignWindow is how long a campaign gets the recency bonus.
	NewCampaignWindow time.Duration
}

// DefaultTiers returns the stock thresholds.
func DefaultTiers() Tiers {
	return Tiers{
		BudgetThresholds: []decimal.Decimal{
			decimal.NewFromInt(1000),
			decimal.NewFromInt(5000),
			decimal.NewFromInt(10000),
			decimal.NewFromInt(50000),
			decimal.NewFromInt(100000),
		},
		NewCampaignWindow: 7 * 24 * time.Hour,
	}
}

const (
	maxBudgetTiers = 5
	recencyBonus   = 0.5
)

// PlacementPriority scores c for simplified placements: a base of 1, plus a
// budget tier (0..5), a CTR tier (0..2) and a bonus for new campaigns.
func PlacementPriority(c *domain.Campaign, tiers Tiers, now time.Time) float64 {
	priority := 1.0

	for i, threshold := range tiers.BudgetThresholds {
		if i == maxBudgetTiers {
			break
		}
		if c.Budget.Total.GreaterThanOrEqual(threshold) {
			priority++
		}
	}

	switch ctr := c.Stats.CTR(); {
	case ctr >= 5:
		priority += 2
	case ctr >= 2:
		priority += 1
	case ctr >= 1:
		priority += 0.5
	}

	if !c.CreatedAt.IsZero() && now.Sub(c.CreatedAt) <= tiers.NewCampaignWindow {
		priority += recencyBonus
	}
	return priority
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
