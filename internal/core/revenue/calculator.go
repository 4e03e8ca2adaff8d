// Package revenue prices billable events and apportions their cost between
// the platform and the vendor hosting the placement.
package revenue

import (
	"github.com/shopspring/decimal"

	"marketplace-ads/internal/core/domain"
)

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// Report summarises the revenue of a batch of events.
type Report struct {
	TotalAdSpend    decimal.Decimal `json:"totalAdSpend"`
	PlatformRevenue decimal.Decimal `json:"platformRevenue"`
	VendorRevenue   decimal.Decimal `json:"vendorRevenue"`
}

// Calculator applies a Config. It is immutable and safe for concurrent use.
type Calculator struct {
	cfg Config
}

// NewCalculator returns a Calculator for cfg. Callers validate cfg first;
// LoadConfig already does.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Share returns the share of a placement type. Unknown types give the
// platform everything.
func (c *Calculator) Share(p domain.PlacementType) domain.RevenueShare {
	if s, ok := c.cfg.Shares[p]; ok {
		return s
	}
	return domain.RevenueShare{PlatformPercent: hundred, VendorPercent: decimal.Zero}
}

// ShareForSlot returns the share of an event served in slot. A vendor-owned
// slot with its own vendor share overrides the placement default.
func (c *Calculator) ShareForSlot(slot domain.Slot) domain.RevenueShare {
	vs := slot.Pricing.VendorShare
	if slot.OwnerVendorID == "" || !vs.IsPositive() || vs.GreaterThan(decimal.NewFromInt(1)) {
		return c.Share(slot.PlacementType)
	}
	vendor := vs.Mul(hundred)
	return domain.RevenueShare{PlatformPercent: hundred.Sub(vendor), VendorPercent: vendor}
}

// Split apportions cost using the share of placement type p.
func (c *Calculator) Split(cost decimal.Decimal, p domain.PlacementType) domain.RevenueSplit {
	return c.Share(p).Split(cost)
}

// ImpressionCost is the price of one impression at a CPM bid, floored at
// the minimum CPM and rounded to domain.MoneyScale.
func (c *Calculator) ImpressionCost(cpm decimal.Decimal) decimal.Decimal {
	return decimal.Max(cpm, c.cfg.MinimumCPM).Div(thousand).Round(domain.MoneyScale)
}

// ClickCost is the price of one click at a CPC bid, floored at the minimum
// CPC.
func (c *Calculator) ClickCost(cpc decimal.Decimal) decimal.Decimal {
	return decimal.Max(cpc, c.cfg.MinimumCPC).Round(domain.MoneyScale)
}

// ConversionCost is the price of one conversion at a CPA bid.
func (c *Calculator) ConversionCost(cpa decimal.Decimal) decimal.Decimal {
	return cpa.Round(domain.MoneyScale)
}

// EventCost prices an event of kind for campaign. Events the campaign's
// pricing model does not bill cost zero.
func (c *Calculator) EventCost(campaign *domain.Campaign, kind domain.EventKind) decimal.Decimal {
	bid := campaign.Bidding.BidAmount
	switch {
	case campaign.Bidding.Type == domain.BiddingCPM && kind == domain.EventImpression:
		return c.ImpressionCost(bid)
	case campaign.Bidding.Type == domain.BiddingCPC && kind == domain.EventClick:
		return c.ClickCost(bid)
	case campaign.Bidding.Type == domain.BiddingCPA && kind == domain.EventConversion:
		return c.ConversionCost(bid)
	}
	return decimal.Zero
}

// CalculateImpressionRevenue reports the revenue of impressions sold at
// cpmRate on placement type p.
func (c *Calculator) CalculateImpressionRevenue(impressions int64, cpmRate decimal.Decimal, p domain.PlacementType) Report {
	total := decimal.NewFromInt(impressions).Mul(cpmRate).Div(thousand)
	return c.report(total, p)
}

// CalculateClickRevenue reports the revenue of clicks sold at cpcRate on
// placement type p.
func (c *Calculator) CalculateClickRevenue(clicks int64, cpcRate decimal.Decimal, p domain.PlacementType) Report {
	total := decimal.NewFromInt(clicks).Mul(cpcRate)
	return c.report(total, p)
}

func (c *Calculator) report(total decimal.Decimal, p domain.PlacementType) Report {
	split := c.Split(total, p)
	return Report{
		TotalAdSpend:    split.Cost,
		PlatformRevenue: split.Platform,
		VendorRevenue:   split.Vendor,
	}
}
