// Package memory is an in-process implementation of port.CampaignStore. It
// backs the memory driver and the concurrency tests of the ledger.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace-ads/internal/core/domain"
	"marketplace-ads/internal/core/port"
)

var _ port.CampaignStore = (*Store)(nil)

type campaignEntry struct {
	mu sync.Mutex // serializes ledger and lifecycle writes
	c  domain.Campaign
}

// Store keeps campaigns, slots, advertisers and fact records in maps. Writes
// to one campaign are serialized by a per-campaign mutex; different
// campaigns are charged concurrently.
type Store struct {
	mu          sync.RWMutex
	campaigns   map[string]*campaignEntry
	slots       map[string]*domain.Slot
	advertisers map[string]*domain.Advertiser
	txs         []domain.AccountTransaction

	eventsMu sync.RWMutex
	events   map[string]domain.FactRecord

	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		campaigns:   make(map[string]*campaignEntry),
		slots:       make(map[string]*domain.Slot),
		advertisers: make(map[string]*domain.Advertiser),
		events:      make(map[string]domain.FactRecord),
		now:         time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// PutAdvertiser inserts or replaces an advertiser.
func (s *Store) PutAdvertiser(a domain.Advertiser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advertisers[a.ID] = &a
}

// PutCampaign inserts or replaces a campaign after validating it.
func (s *Store) PutCampaign(c domain.Campaign) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("campaign %s: %w", c.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[c.ID] = &campaignEntry{c: cloneCampaign(c)}
	return nil
}

// PutSlot inserts or replaces a slot.
func (s *Store) PutSlot(sl domain.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cloneSlot(sl)
	s.slots[sl.ID] = &cp
}

// Advertiser returns a copy of an advertiser.
func (s *Store) Advertiser(id string) (domain.Advertiser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.advertisers[id]
	if !ok {
		return domain.Advertiser{}, false
	}
	return *a, true
}

// Transactions returns the account audit trail in insertion order.
func (s *Store) Transactions() []domain.AccountTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.txs)
}

func (s *Store) entry(id string) (*campaignEntry, error) {
	s.mu.RLock()
	e, ok := s.campaigns[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

// GetCampaign returns a copy of the current campaign state.
func (s *Store) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	c := cloneCampaign(e.c)
	e.mu.Unlock()
	return &c, nil
}

// QueryActiveCampaigns returns serving campaigns ordered by ID.
func (s *Store) QueryActiveCampaigns(_ context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error) {
	now := s.now()

	s.mu.RLock()
	entries := make([]*campaignEntry, 0, len(s.campaigns))
	if len(filter.IDs) > 0 {
		for _, id := range filter.IDs {
			if e, ok := s.campaigns[id]; ok {
				entries = append(entries, e)
			}
		}
	} else {
		for _, e := range s.campaigns {
			entries = append(entries, e)
		}
	}
	s.mu.RUnlock()

	out := make([]domain.Campaign, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		c := e.c
		serving := c.Status == domain.StatusActive &&
			c.Schedule.Active && c.Schedule.Contains(now) &&
			c.Budget.Remaining.IsPositive() &&
			(filter.PlacementType == "" || c.Placement.Type == filter.PlacementType)
		if serving {
			out = append(out, cloneCampaign(c))
		}
		e.mu.Unlock()
	}
	slices.SortFunc(out, func(a, b domain.Campaign) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// GetSlot returns a copy of a slot.
func (s *Store) GetSlot(_ context.Context, id string) (*domain.Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sl, ok := s.slots[id]
	if !ok {
		return nil, fmt.Errorf("slot %s: %w", id, domain.ErrNotFound)
	}
	cp := cloneSlot(*sl)
	return &cp, nil
}

// TouchRotation marks the rotation entry of campaignID as shown.
func (s *Store) TouchRotation(_ context.Context, slotID, campaignID string, shownAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slots[slotID]
	if !ok {
		return fmt.Errorf("slot %s: %w", slotID, domain.ErrNotFound)
	}
	for i := range sl.Rotation {
		r := &sl.Rotation[i]
		if r.CampaignID != campaignID {
			continue
		}
		t := shownAt
		r.LastShown = &t
		if r.RemainingImpressions != nil && *r.RemainingImpressions > 0 {
			n := *r.RemainingImpressions - 1
			r.RemainingImpressions = &n
		}
		return nil
	}
	return fmt.Errorf("slot %s has no rotation entry for campaign %s: %w", slotID, campaignID, domain.ErrNotFound)
}

// ChargeCampaign implements port.LedgerStore. The whole step runs under the
// campaign mutex; the campaign is only written back when every part
// succeeded.
func (s *Store) ChargeCampaign(ctx context.Context, rec *domain.FactRecord, cost decimal.Decimal, now time.Time, loc *time.Location) (domain.SpendResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.SpendResult{}, err
	}
	e, err := s.entry(rec.CampaignID)
	if err != nil {
		return domain.SpendResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if s.hasEvent(rec.ID) {
		return domain.SpendResult{}, fmt.Errorf("event %s: %w", rec.ID, domain.ErrDuplicateEvent)
	}

	c := cloneCampaign(e.c)
	res, err := c.ApplySpend(cost, now, loc)
	if err != nil {
		return domain.SpendResult{}, err
	}
	c.CountEvent(rec.Kind)
	rec.AdvertiserID = c.AdvertiserID
	rec.Settle(res.Charged)

	s.eventsMu.Lock()
	if _, dup := s.events[rec.ID]; dup {
		s.eventsMu.Unlock()
		return domain.SpendResult{}, fmt.Errorf("event %s: %w", rec.ID, domain.ErrDuplicateEvent)
	}
	s.events[rec.ID] = *rec
	s.eventsMu.Unlock()

	e.c = c
	return res, nil
}

func (s *Store) hasEvent(id string) bool {
	s.eventsMu.RLock()
	defer s.eventsMu.RUnlock()
	_, ok := s.events[id]
	return ok
}

// FindEvent returns a stored fact record.
func (s *Store) FindEvent(_ context.Context, id string) (*domain.FactRecord, error) {
	s.eventsMu.RLock()
	defer s.eventsMu.RUnlock()
	rec, ok := s.events[id]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return &rec, nil
}

// CreateCampaign stores a new campaign.
func (s *Store) CreateCampaign(_ context.Context, c *domain.Campaign) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.advertisers[c.AdvertiserID]; !ok {
		return fmt.Errorf("advertiser %s: %w", c.AdvertiserID, domain.ErrNotFound)
	}
	if _, ok := s.campaigns[c.ID]; ok {
		return fmt.Errorf("%w: campaign %s already exists", domain.ErrInvalidArgument, c.ID)
	}
	s.campaigns[c.ID] = &campaignEntry{c: cloneCampaign(*c)}
	return nil
}

// ApproveCampaign implements port.ReviewStore.
func (s *Store) ApproveCampaign(_ context.Context, campaignID string, now time.Time) (*domain.Campaign, domain.AccountTransaction, error) {
	e, err := s.entry(campaignID)
	if err != nil {
		return nil, domain.AccountTransaction{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	// lock order: campaign, then store
	s.mu.Lock()
	defer s.mu.Unlock()

	c := cloneCampaign(e.c)
	var adv *domain.Advertiser
	if a, ok := s.advertisers[c.AdvertiserID]; ok {
		cp := *a
		adv = &cp
	}
	tx, err := c.Approve(adv, now)
	if err != nil {
		return nil, domain.AccountTransaction{}, err
	}
	tx.ID = uuid.NewString()

	s.advertisers[adv.ID] = adv
	s.txs = append(s.txs, tx)
	e.c = c

	out := cloneCampaign(c)
	return &out, tx, nil
}

// UpdateCampaign implements port.ReviewStore.
func (s *Store) UpdateCampaign(_ context.Context, id string, fn func(c *domain.Campaign) error) (*domain.Campaign, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	c := cloneCampaign(e.c)
	if err = fn(&c); err != nil {
		return nil, err
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	e.c = c
	out := cloneCampaign(c)
	return &out, nil
}

// GetStats aggregates fact records with OccurredAt in [From, To].
func (s *Store) GetStats(_ context.Context, req port.StatsReq) (*port.StatsResp, error) {
	resp := &port.StatsResp{
		Spend:           decimal.Zero,
		PlatformRevenue: decimal.Zero,
		VendorRevenue:   decimal.Zero,
	}

	s.eventsMu.RLock()
	defer s.eventsMu.RUnlock()
	for _, rec := range s.events {
		if rec.OccurredAt.Before(req.From) || rec.OccurredAt.After(req.To) {
			continue
		}
		if req.CampaignID != nil && rec.CampaignID != *req.CampaignID {
			continue
		}
		if req.AdvertiserID != nil && rec.AdvertiserID != *req.AdvertiserID {
			continue
		}
		switch rec.Kind {
		case domain.EventImpression:
			resp.Impressions++
		case domain.EventClick:
			resp.Clicks++
		case domain.EventConversion:
			resp.Conversions++
		}
		resp.Spend = resp.Spend.Add(rec.Cost)
		resp.PlatformRevenue = resp.PlatformRevenue.Add(rec.PlatformEarning)
		resp.VendorRevenue = resp.VendorRevenue.Add(rec.VendorEarning)
	}
	return resp, nil
}

func cloneCampaign(c domain.Campaign) domain.Campaign {
	c.Placement.Positions = slices.Clone(c.Placement.Positions)
	c.Placement.TargetVendors = slices.Clone(c.Placement.TargetVendors)
	c.Placement.TargetCategories = slices.Clone(c.Placement.TargetCategories)
	c.Placement.Devices = slices.Clone(c.Placement.Devices)
	c.Targeting.Categories = slices.Clone(c.Targeting.Categories)
	c.Targeting.Locations = slices.Clone(c.Targeting.Locations)
	c.Targeting.StoreTypes = slices.Clone(c.Targeting.StoreTypes)
	if c.Targeting.MinStoreRating != nil {
		r := *c.Targeting.MinStoreRating
		c.Targeting.MinStoreRating = &r
	}
	return c
}

func cloneSlot(sl domain.Slot) domain.Slot {
	sl.Rotation = slices.Clone(sl.Rotation)
	for i := range sl.Rotation {
		if n := sl.Rotation[i].RemainingImpressions; n != nil {
			v := *n
			sl.Rotation[i].RemainingImpressions = &v
		}
	}
	return sl
}
