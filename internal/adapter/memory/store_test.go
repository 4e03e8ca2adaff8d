package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-ads/internal/core/domain"
	"marketplace-ads/internal/core/port"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func campaign(id string, total string) domain.Campaign {
	return domain.Campaign{
		ID:           id,
		AdvertiserID: "adv-1",
		Name:         "Campaign " + id,
		Status:       domain.StatusActive,
		Budget:       domain.NewBudget(dec(total), decimal.Zero),
		Bidding:      domain.Bidding{Type: domain.BiddingCPC, BidAmount: dec("1")},
		Placement:    domain.Placement{Type: domain.PlacementVendorStore, Devices: []string{"desktop"}},
		Schedule:     domain.Schedule{StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 30), Active: true},
		CreatedAt:    now,
	}
}

func newStore(t *testing.T, campaigns ...domain.Campaign) *Store {
	t.Helper()
	s := New(WithClock(func() time.Time { return now }))
	s.PutAdvertiser(domain.Advertiser{ID: "adv-1", AccountBalance: dec("1000")})
	for _, c := range campaigns {
		require.NoError(t, s.PutCampaign(c))
	}
	return s
}

func click(id, campaignID string) *domain.FactRecord {
	return &domain.FactRecord{
		ID:         id,
		Kind:       domain.EventClick,
		CampaignID: campaignID,
		Placement:  domain.PlacementVendorStore,
		Share:      domain.RevenueShare{PlatformPercent: dec("60"), VendorPercent: dec("40")},
		OccurredAt: now,
	}
}

func TestChargeCampaign(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, campaign("c1", "10"))

	rec := click("e1", "c1")
	res, err := s.ChargeCampaign(ctx, rec, dec("4"), now, time.UTC)
	require.NoError(t, err)
	assert.True(t, res.Charged.Equal(dec("4")))
	assert.True(t, rec.VendorEarning.Equal(dec("1.6")))
	assert.Equal(t, "adv-1", rec.AdvertiserID)

	c, err := s.GetCampaign(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, c.Budget.Remaining.Equal(dec("6")))
	assert.Equal(t, int64(1), c.Stats.Clicks)

	_, err = s.ChargeCampaign(ctx, click("e1", "c1"), dec("4"), now, time.UTC)
	assert.ErrorIs(t, err, domain.ErrDuplicateEvent)
	c, _ = s.GetCampaign(ctx, "c1")
	assert.True(t, c.Budget.Remaining.Equal(dec("6")), "duplicate must not charge")

	stored, err := s.FindEvent(ctx, "e1")
	require.NoError(t, err)
	assert.True(t, stored.Cost.Equal(dec("4")))
}

func TestChargeCampaignExhaustion(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, campaign("c1", "5"))

	res, err := s.ChargeCampaign(ctx, click("e1", "c1"), dec("8"), now, time.UTC)
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.True(t, res.Charged.Equal(dec("5")))

	_, err = s.ChargeCampaign(ctx, click("e2", "c1"), dec("1"), now, time.UTC)
	assert.ErrorIs(t, err, domain.ErrBudgetExhausted)
	_, err = s.FindEvent(ctx, "e2")
	assert.ErrorIs(t, err, domain.ErrNotFound, "a rejected charge leaves no fact record")

	active, err := s.QueryActiveCampaigns(ctx, domain.CampaignFilter{})
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestChargeCampaignConcurrent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, campaign("c1", "100"), campaign("c2", "100"))

	var wg sync.WaitGroup
	for i := 0; i < 300; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := "c1"
			if i%2 == 1 {
				id = "c2"
			}
			_, _ = s.ChargeCampaign(ctx, click(decimal.NewFromInt(int64(i)).String(), id), dec("0.7"), now, time.UTC)
		}(i)
	}
	wg.Wait()

	for _, id := range []string{"c1", "c2"} {
		c, err := s.GetCampaign(ctx, id)
		require.NoError(t, err)
		assert.True(t, c.Budget.Spent.LessThanOrEqual(c.Budget.Total))
		assert.True(t, c.Budget.Remaining.Equal(c.Budget.Total.Sub(c.Budget.Spent)))
	}
	stats, err := s.GetStats(ctx, port.StatsReq{From: now.Add(-time.Hour), To: now.Add(time.Hour)})
	require.NoError(t, err)
	assert.True(t, stats.Spend.Equal(dec("200")), "spend %s", stats.Spend)
}

func TestQueryActiveCampaigns(t *testing.T) {
	ctx := context.Background()
	paused := campaign("c2", "10")
	paused.Status = domain.StatusPaused
	future := campaign("c3", "10")
	future.Schedule.StartDate = now.Add(time.Hour)
	homepage := campaign("c4", "10")
	homepage.Placement.Type = domain.PlacementHomepage
	s := newStore(t, campaign("c1", "10"), paused, future, homepage)

	all, err := s.QueryActiveCampaigns(ctx, domain.CampaignFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c4"}, ids(all))

	vendor, err := s.QueryActiveCampaigns(ctx, domain.CampaignFilter{PlacementType: domain.PlacementVendorStore})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, ids(vendor))

	byID, err := s.QueryActiveCampaigns(ctx, domain.CampaignFilter{IDs: []string{"c4", "c2", "missing"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"c4"}, ids(byID))

	// callers cannot mutate the stored campaign
	all[0].Placement.Devices[0] = "tablet"
	c, _ := s.GetCampaign(ctx, "c1")
	assert.Equal(t, "desktop", c.Placement.Devices[0])
}

func TestApproveCampaign(t *testing.T) {
	ctx := context.Background()
	pending := campaign("c1", "600")
	pending.Status = domain.StatusPendingReview
	second := campaign("c2", "600")
	second.Status = domain.StatusPendingReview
	s := newStore(t, pending, second)

	c, tx, err := s.ApproveCampaign(ctx, "c1", now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, c.Status)
	assert.NotEmpty(t, tx.ID)
	adv, _ := s.Advertiser("adv-1")
	assert.True(t, adv.AccountBalance.Equal(dec("400")))

	_, _, err = s.ApproveCampaign(ctx, "c2", now)
	assert.ErrorIs(t, err, domain.ErrInsufficientAdvertiserBalance)
	adv, _ = s.Advertiser("adv-1")
	assert.True(t, adv.AccountBalance.Equal(dec("400")))
	c, _ = s.GetCampaign(ctx, "c2")
	assert.Equal(t, domain.StatusPendingReview, c.Status)
	assert.Len(t, s.Transactions(), 1)

	_, _, err = s.ApproveCampaign(ctx, "missing", now)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateCampaignKeepsStateOnError(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, campaign("c1", "10"))

	_, err := s.UpdateCampaign(ctx, "c1", func(c *domain.Campaign) error {
		c.Name = "changed"
		return c.Resume(now)
	})
	assert.ErrorIs(t, err, domain.ErrInactiveCampaign)
	c, _ := s.GetCampaign(ctx, "c1")
	assert.Equal(t, "Campaign c1", c.Name)

	c, err = s.UpdateCampaign(ctx, "c1", func(c *domain.Campaign) error { return c.Pause(now) })
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, c.Status)
}

func TestTouchRotation(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	two := int64(2)
	s.PutSlot(domain.Slot{ID: "s1", Rotation: []domain.RotationEntry{{CampaignID: "c1", RemainingImpressions: &two}}})

	require.NoError(t, s.TouchRotation(ctx, "s1", "c1", now))
	require.NoError(t, s.TouchRotation(ctx, "s1", "c1", now))
	require.NoError(t, s.TouchRotation(ctx, "s1", "c1", now))

	sl, err := s.GetSlot(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, sl.Rotation[0].Exhausted())
	assert.Equal(t, int64(0), *sl.Rotation[0].RemainingImpressions)
	require.NotNil(t, sl.Rotation[0].LastShown)
	assert.ErrorIs(t, s.TouchRotation(ctx, "s1", "c9", now), domain.ErrNotFound)
	_, err = s.GetSlot(ctx, "s9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func ids(cs []domain.Campaign) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}
