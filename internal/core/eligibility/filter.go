// Package eligibility decides whether a campaign may be shown in a display
// context. Every check is a pure function of its inputs.
package eligibility

import (
	"slices"
	"time"

	"marketplace-ads/internal/core/domain"
	"marketplace-ads/internal/core/port"
)

// Reason names the first rule a campaign failed. The empty Reason means the
// campaign is eligible.
type Reason string

const (
	Eligible          Reason = ""
	ReasonStatus      Reason = "status"
	ReasonSchedule    Reason = "schedule"
	ReasonBudget      Reason = "budget"
	ReasonDailyLimit  Reason = "daily_limit"
	ReasonDevice      Reason = "device"
	ReasonPlacement   Reason = "placement"
	ReasonCategory    Reason = "category"
	ReasonLocation    Reason = "location"
	ReasonStoreType   Reason = "store_type"
	ReasonStoreRating Reason = "store_rating"
	ReasonVendor      Reason = "target_vendor"
	ReasonTargetCat   Reason = "target_category"
	ReasonRule        Reason = "rule"
)

// Filter applies targeting, placement, schedule and budget rules.
type Filter struct {
	rules port.RuleEngine
	loc   *time.Location
}

// New returns a filter. rules may be nil, in which case campaigns with a
// targeting expression never match. loc is the ledger timezone used to
// decide which calendar day the daily spend belongs to.
func New(rules port.RuleEngine, loc *time.Location) *Filter {
	if loc == nil {
		loc = time.UTC
	}
	return &Filter{rules: rules, loc: loc}
}

// Eligible reports whether c may be shown in dc at now.
func (f *Filter) Eligible(c *domain.Campaign, dc domain.DisplayContext, now time.Time) bool {
	return f.Explain(c, dc, now) == Eligible
}

// Explain returns the first rule c fails, or Eligible.
func (f *Filter) Explain(c *domain.Campaign, dc domain.DisplayContext, now time.Time) Reason {
	if c.Status != domain.StatusActive {
		return ReasonStatus
	}
	if !c.Schedule.Active || !c.Schedule.Contains(now) {
		return ReasonSchedule
	}
	if !c.Budget.Remaining.IsPositive() {
		return ReasonBudget
	}
	if !c.Budget.UnderDailyLimit(now, f.loc) {
		return ReasonDailyLimit
	}
	if !matchAny(c.Placement.Devices, dc.Device) {
		return ReasonDevice
	}
	if len(c.Placement.Positions) > 0 {
		if !slices.Contains(c.Placement.Positions, dc.Position) {
			return ReasonPlacement
		}
	} else if dc.PlacementType != c.Placement.Type {
		return ReasonPlacement
	}

	t := c.Targeting
	if !matchAny(t.Categories, dc.Category) {
		return ReasonCategory
	}
	if !matchAny(t.Locations, dc.Location.State) {
		return ReasonLocation
	}
	if !matchAny(t.StoreTypes, dc.StoreType) {
		return ReasonStoreType
	}
	if t.MinStoreRating != nil && dc.StoreRating < *t.MinStoreRating {
		return ReasonStoreRating
	}

	switch c.Placement.Type {
	case domain.PlacementVendorStore:
		if !matchAny(c.Placement.TargetVendors, dc.VendorID) {
			return ReasonVendor
		}
	case domain.PlacementCategory, domain.PlacementSponsoredProduct:
		if !matchAny(c.Placement.TargetCategories, dc.Category) {
			return ReasonTargetCat
		}
	}

	if t.Expression != "" && (f.rules == nil || !f.rules.Match(t.Expression, dc)) {
		return ReasonRule
	}
	return Eligible
}

// matchAny treats an empty allow-list as "match all".
func matchAny(allowed []string, v string) bool {
	return len(allowed) == 0 || slices.Contains(allowed, v)
}
