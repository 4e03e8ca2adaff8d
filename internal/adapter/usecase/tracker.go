package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"marketplace-ads/internal/core/domain"
	"marketplace-ads/internal/core/port"
	"marketplace-ads/internal/core/revenue"
	"marketplace-ads/internal/tracing"
)

var _ port.TrackingUseCase = (*Tracker)(nil)

// Namespaces of the derived event IDs. A click on a known impression always
// gets the same ID, so replays are charged once.
var (
	clickNamespace      = uuid.MustParse("6f0f6b53-52a6-4c1e-9a53-1f1d0cbb5a01")
	conversionNamespace = uuid.MustParse("0b0f47d2-93c5-4d0e-8f3a-7a4b0c64e9c2")
)

// Tracker records impressions, clicks and conversions and charges them to
// the campaign budget.
type Tracker struct {
	campaigns port.CampaignReader
	slots     port.SlotStore
	stats     port.StatsStore
	ledger    *Ledger
	revenue   *revenue.Calculator
	log       *slog.Logger
	now       func() time.Time
}

func NewTracker(
	campaigns port.CampaignReader,
	slots port.SlotStore,
	stats port.StatsStore,
	ledger *Ledger,
	calc *revenue.Calculator,
	log *slog.Logger,
) *Tracker {
	return &Tracker{
		campaigns: campaigns,
		slots:     slots,
		stats:     stats,
		ledger:    ledger,
		revenue:   calc,
		log:       log,
		now:       time.Now,
	}
}

// RecordImpression records an impression and charges CPM campaigns.
func (t *Tracker) RecordImpression(ctx context.Context, campaignID string, req port.TrackRequest) (*port.ImpressionReceipt, error) {
	id := req.ImpressionID
	if id == "" {
		id = uuid.NewString()
	}
	rec, err := t.track(ctx, domain.EventImpression, id, campaignID, req)
	if err != nil {
		return nil, err
	}
	return &port.ImpressionReceipt{ImpressionID: rec.ID, Cost: rec.Cost, Duplicate: rec.duplicate}, nil
}

// RecordClick records a click and charges CPC campaigns.
func (t *Tracker) RecordClick(ctx context.Context, campaignID string, req port.TrackRequest) (*port.ClickReceipt, error) {
	id := uuid.NewString()
	if req.ImpressionID != "" {
		id = uuid.NewSHA1(clickNamespace, []byte(req.ImpressionID)).String()
	}
	rec, err := t.track(ctx, domain.EventClick, id, campaignID, req)
	if err != nil {
		return nil, err
	}
	return &port.ClickReceipt{
		ClickID:        rec.ID,
		DestinationURL: rec.destination,
		Cost:           rec.Cost,
		Duplicate:      rec.duplicate,
	}, nil
}

// RecordConversion records a conversion and charges CPA campaigns.
func (t *Tracker) RecordConversion(ctx context.Context, campaignID string, req port.TrackRequest) (*port.ConversionReceipt, error) {
	id := uuid.NewString()
	if req.ClickID != "" {
		id = uuid.NewSHA1(conversionNamespace, []byte(req.ClickID)).String()
	}
	rec, err := t.track(ctx, domain.EventConversion, id, campaignID, req)
	if err != nil {
		return nil, err
	}
	return &port.ConversionReceipt{ConversionID: rec.ID, Cost: rec.Cost, Duplicate: rec.duplicate}, nil
}

// GetStats returns aggregated stats for campaigns in a period.
func (t *Tracker) GetStats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: period ends before it starts", domain.ErrInvalidArgument)
	}
	return t.stats.GetStats(ctx, req)
}

type tracked struct {
	domain.FactRecord
	destination string
	duplicate   bool
}

func (t *Tracker) track(ctx context.Context, kind domain.EventKind, id, campaignID string, req port.TrackRequest) (*tracked, error) {
	ctx, span := tracing.Tracer().Start(ctx, "tracker.Record", trace.WithAttributes(
		attribute.String("campaign.id", campaignID),
		attribute.String("event.kind", string(kind)),
	))
	defer span.End()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: event id %q is not a UUID", domain.ErrInvalidArgument, id)
	}

	c, err := t.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", kind, err)
	}
	out := &tracked{destination: c.Creative.DestinationURL}

	prev, err := t.replayed(ctx, id, campaignID)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", kind, err)
	}
	if prev != nil {
		out.FactRecord = *prev
		out.duplicate = true
		return out, nil
	}
	if err = c.CheckChargeable(); err != nil {
		return nil, fmt.Errorf("record %s: %w", kind, err)
	}

	rec := t.newRecord(ctx, kind, id, c, req)
	cost := t.revenue.EventCost(c, kind)

	_, err = t.ledger.Charge(ctx, &rec, cost)
	if errors.Is(err, domain.ErrDuplicateEvent) {
		// lost the race against a concurrent replay
		prev, ferr := t.replayed(ctx, id, campaignID)
		if ferr == nil && prev == nil {
			ferr = fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
		}
		if ferr != nil {
			return nil, fmt.Errorf("record %s: %w", kind, ferr)
		}
		out.FactRecord = *prev
		out.duplicate = true
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", kind, err)
	}

	t.log.DebugContext(ctx, "event recorded",
		slog.String("event_id", rec.ID),
		slog.String("kind", string(kind)),
		slog.String("campaign_id", campaignID),
		slog.String("cost", rec.Cost.String()),
	)
	out.FactRecord = rec
	return out, nil
}

// replayed returns the stored record when id was already tracked for this
// campaign, and nil when id is new. An id tracked for another campaign is
// rejected.
func (t *Tracker) replayed(ctx context.Context, id, campaignID string) (*domain.FactRecord, error) {
	prev, err := t.ledger.FindEvent(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, err
	case prev.CampaignID != campaignID:
		return nil, fmt.Errorf("%w: event %s belongs to another campaign", domain.ErrInvalidArgument, id)
	}
	return prev, nil
}

func (t *Tracker) newRecord(ctx context.Context, kind domain.EventKind, id string, c *domain.Campaign, req port.TrackRequest) domain.FactRecord {
	occurred := req.Timestamp
	if occurred.IsZero() {
		occurred = t.now()
	}
	placement := req.Placement
	if !placement.Valid() {
		placement = c.Placement.Type
	}

	rec := domain.FactRecord{
		ID:           id,
		Kind:         kind,
		CampaignID:   c.ID,
		AdvertiserID: c.AdvertiserID,
		SlotID:       req.SlotID,
		Placement:    placement,
		Position:     req.Position,
		VendorID:     req.VendorID,
		Category:     req.Category,
		Device:       req.DeviceType,
		UserAgent:    req.UserAgent,
		Share:        t.revenue.Share(placement),
		Cost:         decimal.Zero,
		OccurredAt:   occurred.UTC(),
	}
	switch kind {
	case domain.EventClick:
		rec.ImpressionID = req.ImpressionID
		rec.Clicked = true
	case domain.EventConversion:
		rec.ClickID = req.ClickID
		rec.Clicked = true
		rec.Converted = true
	}

	if req.SlotID != "" {
		slot, err := t.slots.GetSlot(ctx, req.SlotID)
		switch {
		case err == nil:
			rec.Share = t.revenue.ShareForSlot(*slot)
			if rec.VendorID == "" {
				rec.VendorID = slot.OwnerVendorID
			}
		case !errors.Is(err, domain.ErrNotFound):
			t.log.WarnContext(ctx, "slot lookup failed, using placement share",
				slog.String("slot_id", req.SlotID), slog.Any("error", err))
		}
	}
	return rec
}
