package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-ads/internal/core/domain"
)

// SelectionUseCase picks campaigns for display. "No ad" is a normal outcome
// and is reported as a nil or empty result, never as an error.
type SelectionUseCase interface {
	// SelectForSlot draws one campaign for a slot using weighted random
	// rotation. It returns nil when the slot is disabled or nothing is
	// eligible, and domain.ErrNotFound when the slot does not exist.
	SelectForSlot(ctx context.Context, slotID string, dc domain.DisplayContext) (*SlotSelection, error)

	// SelectForPlacement returns up to q.MaxCount campaigns ordered for
	// display on a simplified placement.
	SelectForPlacement(ctx context.Context, placement domain.PlacementType, q PlacementQuery) ([]domain.Campaign, error)
}

// TrackingUseCase records billable events.
type TrackingUseCase interface {
	// RecordImpression stores an impression and charges CPM campaigns. It
	// fails with domain.ErrNotFound, domain.ErrInactiveCampaign or
	// domain.ErrBudgetExhausted. Replaying the same impression ID returns the
	// original receipt without a second charge.
	RecordImpression(ctx context.Context, campaignID string, req TrackRequest) (*ImpressionReceipt, error)

	// RecordClick stores a click and charges CPC campaigns. It returns the
	// destination URL of the creative. Failure modes match RecordImpression.
	RecordClick(ctx context.Context, campaignID string, req TrackRequest) (*ClickReceipt, error)

	// RecordConversion stores a conversion and charges CPA campaigns.
	RecordConversion(ctx context.Context, campaignID string, req TrackRequest) (*ConversionReceipt, error)

	// GetStats returns aggregated events and money for the requested
	// campaign (optional) and time period.
	GetStats(ctx context.Context, req StatsReq) (*StatsResp, error)
}

// CampaignUseCase drives the campaign lifecycle.
type CampaignUseCase interface {
	// Submit stores a new campaign in review, or as a draft when c is sent
	// with the draft status.
	Submit(ctx context.Context, c domain.Campaign) (*domain.Campaign, error)
	SubmitDraft(ctx context.Context, campaignID string) (*domain.Campaign, error)
	Approve(ctx context.Context, campaignID string) (*domain.Campaign, error)
	Reject(ctx context.Context, campaignID, reason string) (*domain.Campaign, error)
	Pause(ctx context.Context, campaignID string) (*domain.Campaign, error)
	Resume(ctx context.Context, campaignID string) (*domain.Campaign, error)
}

// SlotSelection is the campaign picked for a slot together with the URLs
// the page calls back when the creative renders and when it is clicked.
type SlotSelection struct {
	Campaign     domain.Campaign `json:"campaign"`
	ImpressionID string          `json:"impressionId"`
	TrackingURL  string          `json:"trackingUrl"`
	ClickURL     string          `json:"clickUrl"`
}

// PlacementQuery narrows SelectForPlacement.
type PlacementQuery struct {
	VendorID    string
	Category    string
	Device      string
	Position    string
	StoreType   string
	StoreRating float64
	Location    domain.Location
	MaxCount    int
}

// TrackRequest carries the context of a tracked event.
type TrackRequest struct {
	// ImpressionID is the ID pre-generated by slot selection. For clicks it
	// references the impression that was clicked.
	ImpressionID string `json:"impressionId,omitempty"`
	// ClickID references the click a conversion belongs to.
	ClickID    string               `json:"clickId,omitempty"`
	SlotID     string               `json:"slotId,omitempty"`
	Placement  domain.PlacementType `json:"placement"`
	Position   string               `json:"position,omitempty"`
	VendorID   string               `json:"vendorId,omitempty"`
	Category   string               `json:"category,omitempty"`
	DeviceType string               `json:"deviceType,omitempty"`
	UserAgent  string               `json:"userAgent,omitempty"`
	Timestamp  time.Time            `json:"timestamp"`
}

// ImpressionReceipt acknowledges a recorded impression.
type ImpressionReceipt struct {
	ImpressionID string          `json:"impressionId"`
	Cost         decimal.Decimal `json:"cost"`
	Duplicate    bool            `json:"duplicate,omitempty"`
}

// ClickReceipt acknowledges a recorded click.
type ClickReceipt struct {
	ClickID        string          `json:"clickId"`
	DestinationURL string          `json:"destinationUrl"`
	Cost           decimal.Decimal `json:"cost"`
	Duplicate      bool            `json:"duplicate,omitempty"`
}

// ConversionReceipt acknowledges a recorded conversion.
type ConversionReceipt struct {
	ConversionID string          `json:"conversionId"`
	Cost         decimal.Decimal `json:"cost"`
	Duplicate    bool            `json:"duplicate,omitempty"`
}

// StatsResp contains aggregated event counts and money for campaigns.
type StatsResp struct {
	Impressions     int64           `json:"impressions"`
	Clicks          int64           `json:"clicks"`
	Conversions     int64           `json:"conversions"`
	Spend           decimal.Decimal `json:"spend"`
	PlatformRevenue decimal.Decimal `json:"platformRevenue"`
	VendorRevenue   decimal.Decimal `json:"vendorRevenue"`
}

// StatsReq selects the period and optional campaign or advertiser of a
// stats query.
type StatsReq struct {
	From         time.Time
	To           time.Time
	CampaignID   *string
	AdvertiserID *string
}
