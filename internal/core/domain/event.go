package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventKind distinguishes the fact records written by the tracker.
type EventKind string

const (
	EventImpression EventKind = "impression"
	EventClick      EventKind = "click"
	EventConversion EventKind = "conversion"
)

// FactRecord is the immutable trace of an impression, click or conversion.
// Cost and earnings are settled in the same transaction that charges the
// campaign.
type FactRecord struct {
	ID              string          `json:"id"`
	Kind            EventKind       `json:"kind"`
	CampaignID      string          `json:"campaignId"`
	AdvertiserID    string          `json:"advertiserId"`
	SlotID          string          `json:"slotId,omitempty"`
	Placement       PlacementType   `json:"placement"`
	Position        string          `json:"position,omitempty"`
	VendorID        string          `json:"vendorId,omitempty"`
	Category        string          `json:"category,omitempty"`
	Device          string          `json:"device,omitempty"`
	UserAgent       string          `json:"userAgent,omitempty"`
	ImpressionID    string          `json:"impressionId,omitempty"`
	ClickID         string          `json:"clickId,omitempty"`
	Share           RevenueShare    `json:"-"`
	Cost            decimal.Decimal `json:"cost"`
	PlatformEarning decimal.Decimal `json:"platformEarning"`
	VendorEarning   decimal.Decimal `json:"vendorEarning"`
	Clicked         bool            `json:"clicked"`
	Converted       bool            `json:"converted"`
	OccurredAt      time.Time       `json:"occurredAt"`
}

// MoneyScale is the number of decimal places money is stored with.
const MoneyScale int32 = 6

// Settle fixes the charged cost of the record and splits it with Share.
// Amounts are rounded to MoneyScale and the platform takes the rounding
// remainder, so PlatformEarning + VendorEarning always equals Cost.
func (r *FactRecord) Settle(charged decimal.Decimal) {
	cost := charged.Round(MoneyScale)
	vendor := r.Share.Split(cost).Vendor.Round(MoneyScale)
	r.Cost = cost
	r.VendorEarning = vendor
	r.PlatformEarning = cost.Sub(vendor)
}

// RevenueShare holds the platform and vendor percentages (0-100) of a
// placement type.
type RevenueShare struct {
	PlatformPercent decimal.Decimal `json:"platformShare"`
	VendorPercent   decimal.Decimal `json:"vendorShare"`
}

var hundred = decimal.NewFromInt(100)

// Split apportions cost between platform and vendor.
func (s RevenueShare) Split(cost decimal.Decimal) RevenueSplit {
	return RevenueSplit{
		Cost:     cost,
		Platform: cost.Mul(s.PlatformPercent).Div(hundred),
		Vendor:   cost.Mul(s.VendorPercent).Div(hundred),
	}
}

// RevenueSplit is the result of apportioning a cost.
type RevenueSplit struct {
	Cost     decimal.Decimal `json:"cost"`
	Platform decimal.Decimal `json:"platformRevenue"`
	Vendor   decimal.Decimal `json:"vendorRevenue"`
}
