package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-ads/internal/core/domain"
)

// CampaignReader reads campaigns. Returned campaigns have passed
// domain.Campaign.Validate. Missing campaigns yield domain.ErrNotFound.
type CampaignReader interface {
	// GetCampaign returns the current state of a campaign. Implementations
	// must not serve it from a cache: the selector relies on it to re-check
	// the budget before returning a pick.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	// QueryActiveCampaigns returns active, in-schedule campaigns with
	// remaining budget that match filter. Targeting is not applied.
	QueryActiveCampaigns(ctx context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error)
}

// SlotStore reads slots and maintains their rotation queues.
type SlotStore interface {
	GetSlot(ctx context.Context, id string) (*domain.Slot, error)
	// TouchRotation records that campaignID was shown in slotID and consumes
	// one impression of a bounded rotation entry.
	TouchRotation(ctx context.Context, slotID, campaignID string, shownAt time.Time) error
}

// LedgerStore is the transactional budget primitive. Implementations must
// serialize ChargeCampaign per campaign.
type LedgerStore interface {
	// ChargeCampaign validates the campaign, applies cost to its budget with
	// domain.Campaign.ApplySpend, settles rec with the charged amount, appends
	// rec and bumps the campaign stats in one atomic step. The daily counter
	// is rolled by now, the ledger clock, never by rec.OccurredAt. A record
	// whose ID already exists yields domain.ErrDuplicateEvent and nothing is
	// charged. Lost races are reported as domain.ErrConcurrencyConflict.
	ChargeCampaign(ctx context.Context, rec *domain.FactRecord, cost decimal.Decimal, now time.Time, loc *time.Location) (domain.SpendResult, error)
	// FindEvent returns a previously appended fact record.
	FindEvent(ctx context.Context, id string) (*domain.FactRecord, error)
}

// ReviewStore persists campaign lifecycle changes.
type ReviewStore interface {
	CreateCampaign(ctx context.Context, c *domain.Campaign) error
	// ApproveCampaign runs domain.Campaign.Approve against the locked
	// campaign and advertiser rows, then persists the campaign, the debited
	// balance and the audit transaction together. On error nothing changes.
	ApproveCampaign(ctx context.Context, campaignID string, now time.Time) (*domain.Campaign, domain.AccountTransaction, error)
	// UpdateCampaign applies fn to the locked campaign and persists the
	// result when fn returns nil.
	UpdateCampaign(ctx context.Context, id string, fn func(c *domain.Campaign) error) (*domain.Campaign, error)
}

// StatsStore aggregates fact records.
type StatsStore interface {
	GetStats(ctx context.Context, req StatsReq) (*StatsResp, error)
}

// CampaignStore is the full persistence contract of the ad engine.
type CampaignStore interface {
	CampaignReader
	SlotStore
	LedgerStore
	ReviewStore
	StatsStore
}
