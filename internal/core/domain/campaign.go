package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BiddingType is the pricing model of a campaign.
type BiddingType string

const (
	BiddingCPM BiddingType = "CPM" // cost per thousand impressions
	BiddingCPC BiddingType = "CPC" // cost per click
	BiddingCPA BiddingType = "CPA" // cost per conversion
)

// Valid reports whether b is a known pricing model.
func (b BiddingType) Valid() bool {
	switch b {
	case BiddingCPM, BiddingCPC, BiddingCPA:
		return true
	}
	return false
}

// PlacementType identifies the kind of surface a campaign is bought for.
type PlacementType string

const (
	PlacementHomepage         PlacementType = "homepage"
	PlacementCategory         PlacementType = "category"
	PlacementVendorStore      PlacementType = "vendor_store"
	PlacementSponsoredProduct PlacementType = "sponsored_product"
)

// PlacementTypes lists every supported placement type.
var PlacementTypes = []PlacementType{
	PlacementHomepage,
	PlacementCategory,
	PlacementVendorStore,
	PlacementSponsoredProduct,
}

// Valid reports whether p is a known placement type.
func (p PlacementType) Valid() bool {
	switch p {
	case PlacementHomepage, PlacementCategory, PlacementVendorStore, PlacementSponsoredProduct:
		return true
	}
	return false
}

// Campaign represents an advertiser's bid to appear in a placement.
// Money fields are decimals in the platform currency.
type Campaign struct {
	ID           string    `json:"id"`
	AdvertiserID string    `json:"advertiserId"`
	Name         string    `json:"name"`
	Status       Status    `json:"status"`
	Budget       Budget    `json:"budget"`
	Bidding      Bidding   `json:"bidding"`
	Targeting    Targeting `json:"targeting"`
	Placement    Placement `json:"placement"`
	Creative     Creative  `json:"creative"`
	Schedule     Schedule  `json:"schedule"`
	Stats        Stats     `json:"stats"`
	Lifecycle    Lifecycle `json:"lifecycle"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Budget holds the financial state of a campaign. Remaining always equals
// Total - Spent and never drops below zero.
type Budget struct {
	Total        decimal.Decimal `json:"total"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	DailyLimit   decimal.Decimal `json:"dailyLimit"` // zero means no daily cap
	DailySpent   decimal.Decimal `json:"dailySpent"`
	DailySpentOn time.Time       `json:"dailySpentOn"` // calendar day DailySpent belongs to
}

// Bidding describes how much an advertiser pays per billable event.
type Bidding struct {
	Type      BiddingType     `json:"type"`
	BidAmount decimal.Decimal `json:"bidAmount"`
	MaxBid    decimal.Decimal `json:"maxBid"`
}

// Placement describes where a campaign may be shown.
type Placement struct {
	Type             PlacementType `json:"type"`
	Positions        []string      `json:"positions,omitempty"`
	TargetVendors    []string      `json:"targetVendors,omitempty"`
	TargetCategories []string      `json:"targetCategories,omitempty"`
	Devices          []string      `json:"devices,omitempty"`
}

// Schedule bounds the time window a campaign may run in.
type Schedule struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Active    bool      `json:"active"`
}

// Contains reports whether now lies inside the schedule window.
func (s Schedule) Contains(now time.Time) bool {
	return !now.Before(s.StartDate) && !now.After(s.EndDate)
}

// Stats are informational counters; they tolerate at-least-once updates.
type Stats struct {
	Impressions int64 `json:"impressions"`
	Clicks      int64 `json:"clicks"`
	Conversions int64 `json:"conversions"`
}

// CTR returns the click-through rate in percent.
func (s Stats) CTR() float64 {
	if s.Impressions <= 0 {
		return 0
	}
	return float64(s.Clicks) / float64(s.Impressions) * 100
}

// Lifecycle records when a campaign moved between states.
type Lifecycle struct {
	FundsReserved    bool             `json:"fundsReserved"`
	CompletionReason CompletionReason `json:"completionReason,omitempty"`
	RejectionReason  string           `json:"rejectionReason,omitempty"`
	SubmittedAt      *time.Time       `json:"submittedAt,omitempty"`
	ApprovedAt       *time.Time       `json:"approvedAt,omitempty"`
	RejectedAt       *time.Time       `json:"rejectedAt,omitempty"`
	PausedAt         *time.Time       `json:"pausedAt,omitempty"`
	ResumedAt        *time.Time       `json:"resumedAt,omitempty"`
	CompletedAt      *time.Time       `json:"completedAt,omitempty"`
}

// CampaignFilter narrows a query for active campaigns. Zero fields match
// everything.
type CampaignFilter struct {
	PlacementType PlacementType
	IDs           []string
}
