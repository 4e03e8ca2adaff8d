package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Slot is a vendor- or platform-owned surface ads are rendered into.
type Slot struct {
	ID            string          `json:"id"`
	OwnerVendorID string          `json:"ownerVendorId,omitempty"`
	PlacementType PlacementType   `json:"placementType"`
	Position      string          `json:"position"`
	Pricing       SlotPricing     `json:"pricing"`
	Availability  Availability    `json:"availability"`
	Rotation      []RotationEntry `json:"rotation"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// SlotPricing is the price list of a slot.
type SlotPricing struct {
	BaseRate    decimal.Decimal `json:"baseRate"`    // base CPM
	VendorShare decimal.Decimal `json:"vendorShare"` // fraction 0-1
}

// Availability toggles a slot on or off.
type Availability struct {
	Enabled bool `json:"enabled"`
}

// RotationEntry is one campaign queued in a slot.
type RotationEntry struct {
	CampaignID string  `json:"campaignId"`
	Priority   float64 `json:"priority"`
	Weight     float64 `json:"weight"`
	// RemainingImpressions bounds how often the entry is shown; nil means
	// unlimited.
	RemainingImpressions *int64     `json:"remainingImpressions,omitempty"`
	LastShown            *time.Time `json:"lastShown,omitempty"`
}

// Exhausted reports whether the entry used up its impression allowance.
func (e RotationEntry) Exhausted() bool {
	return e.RemainingImpressions != nil && *e.RemainingImpressions <= 0
}

// Context builds the display context of a request rendered into this slot.
func (s Slot) Context(dc DisplayContext) DisplayContext {
	dc.SlotID = s.ID
	dc.PlacementType = s.PlacementType
	if dc.Position == "" {
		dc.Position = s.Position
	}
	if dc.VendorID == "" {
		dc.VendorID = s.OwnerVendorID
	}
	return dc
}
