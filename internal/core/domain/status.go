package domain

import (
	"fmt"
	"time"
)

// Status is a campaign state.
//
//	draft -> pending_review -> active <-> paused -> completed
//	                        \-> rejected
//
// completed and rejected are terminal.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusPendingReview Status = "pending_review"
	StatusActive        Status = "active"
	StatusPaused        Status = "paused"
	StatusCompleted     Status = "completed"
	StatusRejected      Status = "rejected"
)

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingReview, StatusActive, StatusPaused, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// CompletionReason explains why a campaign reached the completed state.
type CompletionReason string

const (
	CompletionBudgetExhausted CompletionReason = "budget_exhausted"
	CompletionEnded           CompletionReason = "schedule_ended"
	CompletionManual          CompletionReason = "manual"
)

func transitionError(from, to Status) error {
	return fmt.Errorf("%w: cannot move from %s to %s", ErrInactiveCampaign, from, to)
}

// Submit moves a draft campaign into review.
func (c *Campaign) Submit(now time.Time) error {
	if c.Status != StatusDraft {
		return transitionError(c.Status, StatusPendingReview)
	}
	c.Status = StatusPendingReview
	c.Lifecycle.SubmittedAt = &now
	c.UpdatedAt = now
	return nil
}

// Approve activates a campaign under review and reserves its total budget
// from the advertiser account. On error neither c nor adv is modified. The
// returned transaction is the audit record of the debit.
func (c *Campaign) Approve(adv *Advertiser, now time.Time) (AccountTransaction, error) {
	if c.Status != StatusPendingReview {
		return AccountTransaction{}, transitionError(c.Status, StatusActive)
	}
	if adv == nil || adv.ID != c.AdvertiserID {
		return AccountTransaction{}, fmt.Errorf("advertiser %s: %w", c.AdvertiserID, ErrNotFound)
	}
	if adv.AccountBalance.LessThan(c.Budget.Total) {
		return AccountTransaction{}, fmt.Errorf("%w: balance %s, campaign total %s",
			ErrInsufficientAdvertiserBalance, adv.AccountBalance, c.Budget.Total)
	}

	adv.AccountBalance = adv.AccountBalance.Sub(c.Budget.Total)
	adv.UpdatedAt = now

	c.Status = StatusActive
	c.Lifecycle.FundsReserved = true
	c.Lifecycle.ApprovedAt = &now
	c.UpdatedAt = now

	return AccountTransaction{
		AdvertiserID: adv.ID,
		CampaignID:   c.ID,
		Kind:         TransactionFundsReserved,
		Amount:       c.Budget.Total.Neg(),
		BalanceAfter: adv.AccountBalance,
		CreatedAt:    now,
	}, nil
}

// Reject closes a campaign under review without moving funds.
func (c *Campaign) Reject(reason string, now time.Time) error {
	if c.Status != StatusPendingReview {
		return transitionError(c.Status, StatusRejected)
	}
	c.Status = StatusRejected
	c.Lifecycle.RejectionReason = reason
	c.Lifecycle.RejectedAt = &now
	c.UpdatedAt = now
	return nil
}

// Pause stops an active campaign from serving.
func (c *Campaign) Pause(now time.Time) error {
	if c.Status != StatusActive {
		return transitionError(c.Status, StatusPaused)
	}
	c.Status = StatusPaused
	c.Lifecycle.PausedAt = &now
	c.UpdatedAt = now
	return nil
}

// Resume puts a paused campaign back into rotation.
func (c *Campaign) Resume(now time.Time) error {
	if c.Status != StatusPaused {
		return transitionError(c.Status, StatusActive)
	}
	c.Status = StatusActive
	c.Lifecycle.ResumedAt = &now
	c.UpdatedAt = now
	return nil
}

// Complete moves any non-terminal campaign to completed.
func (c *Campaign) Complete(reason CompletionReason, now time.Time) error {
	if c.Status.Terminal() {
		return transitionError(c.Status, StatusCompleted)
	}
	c.Status = StatusCompleted
	c.Lifecycle.CompletionReason = reason
	c.Lifecycle.CompletedAt = &now
	c.UpdatedAt = now
	return nil
}
