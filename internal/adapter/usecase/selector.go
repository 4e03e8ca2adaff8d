package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"marketplace-ads/internal/async"
	"marketplace-ads/internal/core/domain"
	"marketplace-ads/internal/core/eligibility"
	"marketplace-ads/internal/core/port"
	"marketplace-ads/internal/core/scoring"
	"marketplace-ads/internal/metrics"
	"marketplace-ads/internal/tracing"
)

var _ port.SelectionUseCase = (*Selector)(nil)

// SelectorConfig tunes selection.
type SelectorConfig struct {
	// BaseURL prefixes the tracking and click URLs handed to the page.
	BaseURL string
	// MaxCount caps PlacementQuery.MaxCount.
	MaxCount int
	Tiers    scoring.Tiers
}

// Selector picks campaigns for slots and placements.
type Selector struct {
	campaigns port.CampaignReader
	slots     port.SlotStore
	filter    *eligibility.Filter
	rnd       scoring.Random
	tasks     *async.Runner
	metrics   *metrics.Metrics
	log       *slog.Logger
	cfg       SelectorConfig
	now       func() time.Time
}

func NewSelector(
	campaigns port.CampaignReader,
	slots port.SlotStore,
	filter *eligibility.Filter,
	rnd scoring.Random,
	tasks *async.Runner,
	m *metrics.Metrics,
	log *slog.Logger,
	cfg SelectorConfig,
) *Selector {
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = 10
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Selector{
		campaigns: campaigns,
		slots:     slots,
		filter:    filter,
		rnd:       rnd,
		tasks:     tasks,
		metrics:   m,
		log:       log,
		cfg:       cfg,
		now:       time.Now,
	}
}

// SelectForSlot draws one campaign for the slot. Candidates come from the
// slot's rotation queue; a slot without a queue competes over every active
// campaign of its placement type. Only the highest rotation priority present
// takes part in a draw, and the entry weight scales the campaign's slot
// weight. A drawn campaign is re-read from the store and evicted when its
// budget ran out in the meantime; the draw then moves on, down to lower
// priorities once a tier is empty.
func (s *Selector) SelectForSlot(ctx context.Context, slotID string, dc domain.DisplayContext) (sel *port.SlotSelection, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "selector.SelectForSlot", trace.WithAttributes(attribute.String("slot.id", slotID)))
	start := time.Now()
	placement := "unknown"
	defer func() {
		s.finish(span, placement, start, sel != nil, err)
	}()

	slot, err := s.slots.GetSlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("select for slot %s: %w", slotID, err)
	}
	placement = string(slot.PlacementType)
	if !slot.Availability.Enabled {
		s.log.DebugContext(ctx, "slot disabled", slog.String("slot_id", slotID))
		return nil, nil
	}

	dc = slot.Context(dc)
	now := s.now()

	candidates, err := s.slotCandidates(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("select for slot %s: %w", slotID, err)
	}
	pool := s.eligible(ctx, candidates, dc, now)

	var (
		chosen  *domain.Campaign
		evicted int
	)
	entries := make(map[string]domain.RotationEntry, len(slot.Rotation))
	for _, e := range slot.Rotation {
		entries[e.CampaignID] = e
	}
	for len(pool) > 0 {
		tier := topPriority(pool, entries)
		weights := make([]float64, len(tier))
		for j, idx := range tier {
			w := scoring.SlotWeight(&pool[idx], slot.Pricing, s.rnd.Float64())
			if e, ok := entries[pool[idx].ID]; ok && e.Weight > 0 {
				w *= e.Weight
			}
			weights[j] = w
		}
		i := tier[scoring.Draw(weights, s.rnd.Float64())]

		fresh, err := s.campaigns.GetCampaign(ctx, pool[i].ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("select for slot %s: recheck campaign %s: %w", slotID, pool[i].ID, err)
		}
		if err == nil && fresh.Status == domain.StatusActive && fresh.Budget.Remaining.IsPositive() {
			chosen = fresh
			break
		}
		evicted++
		s.metrics.RecordEviction()
		pool = slices.Delete(pool, i, i+1)
	}

	s.log.DebugContext(ctx, "slot selection",
		slog.String("slot_id", slotID),
		slog.Int("fetched", len(candidates)),
		slog.Int("eligible", len(pool)+evicted),
		slog.Int("evicted", evicted),
		slog.Bool("served", chosen != nil),
	)
	if chosen == nil {
		return nil, nil
	}

	impressionID := uuid.NewString()
	sel = &port.SlotSelection{
		Campaign:     *chosen,
		ImpressionID: impressionID,
		TrackingURL:  s.trackURL("impression", chosen.ID, impressionID, slot),
		ClickURL:     s.trackURL("click", chosen.ID, impressionID, slot),
	}

	if slices.ContainsFunc(slot.Rotation, func(e domain.RotationEntry) bool { return e.CampaignID == chosen.ID }) {
		campaignID := chosen.ID
		s.tasks.Go(ctx, "rotation.touch", func(ctx context.Context) error {
			return s.slots.TouchRotation(ctx, slotID, campaignID, now)
		})
	}
	return sel, nil
}

// topPriority returns the pool indices of the highest rotation priority.
// Campaigns outside the rotation queue have priority 0.
func topPriority(pool []domain.Campaign, entries map[string]domain.RotationEntry) []int {
	var (
		top  float64
		tier []int
	)
	for i := range pool {
		p := entries[pool[i].ID].Priority
		switch {
		case len(tier) == 0 || p > top:
			top, tier = p, append(tier[:0], i)
		case p == top:
			tier = append(tier, i)
		}
	}
	return tier
}

func (s *Selector) slotCandidates(ctx context.Context, slot *domain.Slot) ([]domain.Campaign, error) {
	if len(slot.Rotation) == 0 {
		return s.campaigns.QueryActiveCampaigns(ctx, domain.CampaignFilter{PlacementType: slot.PlacementType})
	}
	ids := make([]string, 0, len(slot.Rotation))
	for _, e := range slot.Rotation {
		if !e.Exhausted() {
			ids = append(ids, e.CampaignID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.campaigns.QueryActiveCampaigns(ctx, domain.CampaignFilter{IDs: ids})
}

// SelectForPlacement ranks campaigns for a simplified placement. Homepage
// rotates with a weighted draw without replacement; the other placement
// types are ordered by priority, then bid, then ID.
func (s *Selector) SelectForPlacement(ctx context.Context, placement domain.PlacementType, q port.PlacementQuery) (out []domain.Campaign, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "selector.SelectForPlacement", trace.WithAttributes(attribute.String("placement", string(placement))))
	start := time.Now()
	defer func() {
		s.finish(span, string(placement), start, len(out) > 0, err)
	}()

	if !placement.Valid() {
		return nil, fmt.Errorf("%w: unknown placement type %q", domain.ErrInvalidArgument, placement)
	}
	limit := q.MaxCount
	if limit <= 0 {
		limit = 1
	}
	limit = min(limit, s.cfg.MaxCount)

	candidates, err := s.campaigns.QueryActiveCampaigns(ctx, domain.CampaignFilter{PlacementType: placement})
	if err != nil {
		return nil, fmt.Errorf("select for placement %s: %w", placement, err)
	}

	dc := domain.DisplayContext{
		PlacementType: placement,
		Position:      q.Position,
		Device:        q.Device,
		Category:      q.Category,
		VendorID:      q.VendorID,
		Location:      q.Location,
		StoreRating:   q.StoreRating,
		StoreType:     q.StoreType,
	}
	now := s.now()
	pool := s.eligible(ctx, candidates, dc, now)

	priorities := make([]float64, len(pool))
	for i := range pool {
		priorities[i] = scoring.PlacementPriority(&pool[i], s.cfg.Tiers, now)
	}

	if placement == domain.PlacementHomepage {
		out = s.rotate(pool, priorities, limit)
	} else {
		out = rank(pool, priorities, limit)
	}

	s.log.DebugContext(ctx, "placement selection",
		slog.String("placement", string(placement)),
		slog.Int("fetched", len(candidates)),
		slog.Int("eligible", len(pool)),
		slog.Int("returned", len(out)),
	)
	return out, nil
}

// rotate draws up to limit campaigns without replacement.
func (s *Selector) rotate(pool []domain.Campaign, weights []float64, limit int) []domain.Campaign {
	pool = slices.Clone(pool)
	weights = slices.Clone(weights)
	out := make([]domain.Campaign, 0, min(limit, len(pool)))
	for len(out) < limit && len(pool) > 0 {
		i := scoring.Draw(weights, s.rnd.Float64())
		out = append(out, pool[i])
		pool = slices.Delete(pool, i, i+1)
		weights = slices.Delete(weights, i, i+1)
	}
	return out
}

// rank orders by priority desc, bid desc, id asc.
func rank(pool []domain.Campaign, priorities []float64, limit int) []domain.Campaign {
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		if c := cmp.Compare(priorities[b], priorities[a]); c != 0 {
			return c
		}
		if c := pool[b].Bidding.BidAmount.Cmp(pool[a].Bidding.BidAmount); c != 0 {
			return c
		}
		return cmp.Compare(pool[a].ID, pool[b].ID)
	})

	out := make([]domain.Campaign, 0, min(limit, len(idx)))
	for _, i := range idx[:min(limit, len(idx))] {
		out = append(out, pool[i])
	}
	return out
}

func (s *Selector) eligible(ctx context.Context, candidates []domain.Campaign, dc domain.DisplayContext, now time.Time) []domain.Campaign {
	pool := make([]domain.Campaign, 0, len(candidates))
	for i := range candidates {
		if reason := s.filter.Explain(&candidates[i], dc, now); reason != eligibility.Eligible {
			s.log.DebugContext(ctx, "campaign filtered",
				slog.String("campaign_id", candidates[i].ID),
				slog.String("reason", string(reason)),
			)
			continue
		}
		pool = append(pool, candidates[i])
	}
	return pool
}

func (s *Selector) trackURL(kind, campaignID, impressionID string, slot *domain.Slot) string {
	q := url.Values{}
	q.Set("impression_id", impressionID)
	q.Set("slot_id", slot.ID)
	q.Set("placement", string(slot.PlacementType))
	return fmt.Sprintf("%s/api/v1/track/%s/%s?%s", s.cfg.BaseURL, kind, url.PathEscape(campaignID), q.Encode())
}

func (s *Selector) finish(span trace.Span, placement string, start time.Time, served bool, err error) {
	outcome := "empty"
	switch {
	case err != nil:
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case served:
		outcome = "served"
	}
	span.SetAttributes(attribute.String("outcome", outcome))
	span.End()
	s.metrics.RecordSelection(placement, outcome, time.Since(start))
}
