package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SpendResult describes the outcome of a single budget decrement.
type SpendResult struct {
	Requested decimal.Decimal
	Charged   decimal.Decimal // Requested clamped to the remaining budget
	Remaining decimal.Decimal
	// Completed is set when this decrement exhausted the budget and moved the
	// campaign to completed.
	Completed bool
}

// NewBudget returns a fresh budget with nothing spent.
func NewBudget(total, dailyLimit decimal.Decimal) Budget {
	return Budget{
		Total:      total,
		Spent:      decimal.Zero,
		Remaining:  total,
		DailyLimit: dailyLimit,
		DailySpent: decimal.Zero,
	}
}

// Day truncates t to the calendar day it falls on in loc. Daily spend rolls
// over at midnight of that timezone.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DailySpentAt returns the amount spent on the calendar day of now. Spend
// recorded for an earlier day counts as zero.
func (b Budget) DailySpentAt(now time.Time, loc *time.Location) decimal.Decimal {
	if !b.DailySpentOn.Equal(Day(now, loc)) {
		return decimal.Zero
	}
	return b.DailySpent
}

// UnderDailyLimit reports whether the daily cap still leaves room on the
// calendar day of now.
func (b Budget) UnderDailyLimit(now time.Time, loc *time.Location) bool {
	if !b.DailyLimit.IsPositive() {
		return true
	}
	return b.DailySpentAt(now, loc).LessThan(b.DailyLimit)
}

// CheckChargeable validates that a billable event may be recorded for c.
func (c *Campaign) CheckChargeable() error {
	if !c.Budget.Remaining.IsPositive() {
		return fmt.Errorf("campaign %s: %w", c.ID, ErrBudgetExhausted)
	}
	if c.Status != StatusActive {
		return fmt.Errorf("campaign %s is %s: %w", c.ID, c.Status, ErrInactiveCampaign)
	}
	return nil
}

// ApplySpend decrements the budget by cost. The charge is clamped to the
// remaining budget so Spent never exceeds Total, and to what is left of the
// daily limit so the spend of a day never exceeds DailyLimit. A positive cost
// on a day whose limit is used up fails with ErrDailyLimitReached. When the
// decrement leaves nothing, the campaign is completed with
// CompletionBudgetExhausted.
//
// now is the ledger clock; it decides the calendar day of the daily counter.
//
// ApplySpend is not safe for concurrent use; stores call it while holding the
// campaign lock.
func (c *Campaign) ApplySpend(cost decimal.Decimal, now time.Time, loc *time.Location) (SpendResult, error) {
	if cost.IsNegative() {
		return SpendResult{}, fmt.Errorf("%w: negative cost %s", ErrInvalidArgument, cost)
	}
	if err := c.CheckChargeable(); err != nil {
		return SpendResult{}, err
	}

	today := Day(now, loc)
	if !c.Budget.DailySpentOn.Equal(today) {
		c.Budget.DailySpent = decimal.Zero
		c.Budget.DailySpentOn = today
	}

	charged := decimal.Min(cost, c.Budget.Remaining)
	if c.Budget.DailyLimit.IsPositive() {
		room := c.Budget.DailyLimit.Sub(c.Budget.DailySpent)
		if cost.IsPositive() && !room.IsPositive() {
			return SpendResult{}, fmt.Errorf("campaign %s spent %s of %s today: %w",
				c.ID, c.Budget.DailySpent, c.Budget.DailyLimit, ErrDailyLimitReached)
		}
		charged = decimal.Min(charged, room)
	}
	c.Budget.Spent = c.Budget.Spent.Add(charged)
	c.Budget.Remaining = c.Budget.Total.Sub(c.Budget.Spent)
	c.Budget.DailySpent = c.Budget.DailySpent.Add(charged)
	c.UpdatedAt = now

	res := SpendResult{
		Requested: cost,
		Charged:   charged,
		Remaining: c.Budget.Remaining,
	}
	if !c.Budget.Remaining.IsPositive() {
		if err := c.Complete(CompletionBudgetExhausted, now); err != nil {
			return SpendResult{}, err
		}
		res.Completed = true
	}
	return res, nil
}

// CountEvent bumps the stats counter matching kind.
func (c *Campaign) CountEvent(kind EventKind) {
	switch kind {
	case EventImpression:
		c.Stats.Impressions++
	case EventClick:
		c.Stats.Clicks++
	case EventConversion:
		c.Stats.Conversions++
	}
}
