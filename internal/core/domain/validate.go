package domain

import (
	"errors"
	"fmt"
)

// Validate checks the structural and financial invariants of a campaign.
// Stores call it for every campaign they load so the rest of the pipeline
// only ever sees well-formed records.
func (c *Campaign) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...))
	}

	if c.ID == "" {
		add("campaign id is empty")
	}
	if c.AdvertiserID == "" {
		add("advertiser id is empty")
	}
	if !c.Status.Valid() {
		add("unknown status %q", c.Status)
	}
	if !c.Bidding.Type.Valid() {
		add("unknown bidding type %q", c.Bidding.Type)
	}
	if !c.Bidding.BidAmount.IsPositive() {
		add("bid amount must be positive")
	}
	if c.Bidding.MaxBid.IsPositive() && c.Bidding.MaxBid.LessThan(c.Bidding.BidAmount) {
		add("max bid %s is below bid amount %s", c.Bidding.MaxBid, c.Bidding.BidAmount)
	}
	if !c.Placement.Type.Valid() {
		add("unknown placement type %q", c.Placement.Type)
	}

	b := c.Budget
	if !b.Total.IsPositive() {
		add("budget total must be positive")
	}
	if b.Spent.IsNegative() || b.Spent.GreaterThan(b.Total) {
		add("budget spent %s outside [0, %s]", b.Spent, b.Total)
	}
	if !b.Remaining.Equal(b.Total.Sub(b.Spent)) {
		add("budget remaining %s does not match total %s - spent %s", b.Remaining, b.Total, b.Spent)
	}
	if b.DailyLimit.IsNegative() {
		add("daily limit must not be negative")
	}

	if c.Schedule.StartDate.IsZero() || c.Schedule.EndDate.IsZero() {
		add("schedule start and end dates are required")
	} else if c.Schedule.EndDate.Before(c.Schedule.StartDate) {
		add("schedule ends before it starts")
	}
	if r := c.Targeting.MinStoreRating; r != nil && (*r < 0 || *r > 5) {
		add("min store rating %.2f outside [0, 5]", *r)
	}

	return errors.Join(errs...)
}
