package domain

import "errors"

// Sentinel errors returned by the core. Callers match them with errors.Is;
// implementations wrap them with context.
var (
	// ErrNotFound is returned when a campaign, slot or advertiser does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInactiveCampaign is returned when the campaign status does not allow
	// the requested operation.
	ErrInactiveCampaign = errors.New("campaign is not in a valid state for this operation")
	// ErrBudgetExhausted is returned when the campaign has no remaining budget.
	ErrBudgetExhausted = errors.New("campaign budget exhausted")
	// ErrDailyLimitReached is returned when the campaign already spent its
	// daily limit for the current calendar day.
	ErrDailyLimitReached = errors.New("campaign daily limit reached")
	// ErrInsufficientAdvertiserBalance is returned on approval when the
	// advertiser cannot cover the campaign total.
	ErrInsufficientAdvertiserBalance = errors.New("insufficient advertiser balance")
	// ErrConcurrencyConflict is returned when a ledger transaction lost a
	// race and may be retried.
	ErrConcurrencyConflict = errors.New("concurrent budget update conflict")
	// ErrDuplicateEvent is returned when a fact record with the same ID was
	// already stored. Nothing is charged twice.
	ErrDuplicateEvent = errors.New("event already recorded")
	// ErrInvalidArgument is returned for malformed input.
	ErrInvalidArgument = errors.New("invalid argument")
)
