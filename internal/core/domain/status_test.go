package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveReservesFunds(t *testing.T) {
	now := time.Now()
	c := activeCampaign("500", "0")
	c.Status = StatusPendingReview
	adv := &Advertiser{ID: "a1", AccountBalance: dec("800")}

	tx, err := c.Approve(adv, now)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, c.Status)
	assert.True(t, c.Lifecycle.FundsReserved)
	assert.True(t, adv.AccountBalance.Equal(dec("300")))
	assert.True(t, tx.Amount.Equal(dec("-500")))
	assert.True(t, tx.BalanceAfter.Equal(dec("300")))
	assert.Equal(t, TransactionFundsReserved, tx.Kind)
}

func TestApproveFailureLeavesStateUntouched(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		status Status
		adv    *Advertiser
		want   error
	}{
		{"insufficient balance", StatusPendingReview, &Advertiser{ID: "a1", AccountBalance: dec("499.99")}, ErrInsufficientAdvertiserBalance},
		{"missing advertiser", StatusPendingReview, nil, ErrNotFound},
		{"other advertiser", StatusPendingReview, &Advertiser{ID: "a2", AccountBalance: dec("1000")}, ErrNotFound},
		{"not under review", StatusDraft, &Advertiser{ID: "a1", AccountBalance: dec("1000")}, ErrInactiveCampaign},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := activeCampaign("500", "0")
			c.Status = tt.status
			var before Advertiser
			if tt.adv != nil {
				before = *tt.adv
			}

			_, err := c.Approve(tt.adv, now)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.status, c.Status)
			assert.False(t, c.Lifecycle.FundsReserved)
			if tt.adv != nil {
				assert.True(t, tt.adv.AccountBalance.Equal(before.AccountBalance))
			}
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	now := time.Now()
	c := activeCampaign("100", "0")
	c.Status = StatusDraft

	require.NoError(t, c.Submit(now))
	assert.Equal(t, StatusPendingReview, c.Status)
	assert.ErrorIs(t, c.Pause(now), ErrInactiveCampaign)
	assert.ErrorIs(t, c.Resume(now), ErrInactiveCampaign)

	c.Status = StatusActive
	require.NoError(t, c.Pause(now))
	assert.Equal(t, StatusPaused, c.Status)
	assert.ErrorIs(t, c.Pause(now), ErrInactiveCampaign)
	require.NoError(t, c.Resume(now))
	assert.Equal(t, StatusActive, c.Status)
	assert.ErrorIs(t, c.Reject("late", now), ErrInactiveCampaign)

	require.NoError(t, c.Complete(CompletionManual, now))
	assert.ErrorIs(t, c.Complete(CompletionManual, now), ErrInactiveCampaign)
	assert.ErrorIs(t, c.Resume(now), ErrInactiveCampaign)
}

func TestRejectRequiresReview(t *testing.T) {
	now := time.Now()
	c := activeCampaign("100", "0")
	c.Status = StatusPendingReview

	require.NoError(t, c.Reject("creative violates policy", now))
	assert.Equal(t, StatusRejected, c.Status)
	assert.Equal(t, "creative violates policy", c.Lifecycle.RejectionReason)
	assert.True(t, c.Status.Terminal())
	assert.ErrorIs(t, c.Reject("again", now), ErrInactiveCampaign)
}

func TestValidate(t *testing.T) {
	c := activeCampaign("100", "10")
	require.NoError(t, c.Validate())

	c.Budget.Remaining = dec("95")
	c.Bidding.Type = "CPX"
	err := c.Validate()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "remaining")
	assert.Contains(t, err.Error(), "CPX")
}
