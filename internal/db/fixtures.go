package db

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-ads/internal/core/domain"
)

// Fixtures is a consistent set of demo data.
type Fixtures struct {
	Advertisers []domain.Advertiser
	Campaigns   []domain.Campaign
	Slots       []domain.Slot
}

// DemoFixtures builds demo advertisers, running campaigns on every
// placement type and two vendor slots, scheduled around now.
func DemoFixtures(now time.Time) Fixtures {
	now = now.UTC().Truncate(time.Second)
	rating := 4.0

	fx := Fixtures{
		Advertisers: []domain.Advertiser{
			{ID: "adv-acme", Name: "Acme Outdoor", AccountBalance: decimal.NewFromInt(250000), CreatedAt: now, UpdatedAt: now},
			{ID: "adv-nimbus", Name: "Nimbus Electronics", AccountBalance: decimal.NewFromInt(80000), CreatedAt: now, UpdatedAt: now},
		},
	}

	type demo struct {
		advertiser string
		placement  domain.PlacementType
		bidding    domain.BiddingType
		bid        string
		total      int64
		targeting  domain.Targeting
	}
	demos := []demo{
		{"adv-acme", domain.PlacementHomepage, domain.BiddingCPM, "12", 60000, domain.Targeting{}},
		{"adv-acme", domain.PlacementHomepage, domain.BiddingCPC, "0.85", 8000, domain.Targeting{Locations: []string{"CA", "NY"}}},
		{"adv-acme", domain.PlacementCategory, domain.BiddingCPC, "0.60", 12000, domain.Targeting{Categories: []string{"outdoor", "sports"}}},
		{"adv-nimbus", domain.PlacementCategory, domain.BiddingCPM, "8", 5000, domain.Targeting{Categories: []string{"electronics"}}},
		{"adv-nimbus", domain.PlacementVendorStore, domain.BiddingCPC, "1.20", 20000, domain.Targeting{MinStoreRating: &rating}},
		{"adv-nimbus", domain.PlacementVendorStore, domain.BiddingCPM, "15", 3000, domain.Targeting{Expression: `device != "tablet"`}},
		{"adv-acme", domain.PlacementSponsoredProduct, domain.BiddingCPA, "4.50", 15000, domain.Targeting{}},
	}
	for i, s := range demos {
		id := fmt.Sprintf("demo-campaign-%d", i+1)
		fx.Campaigns = append(fx.Campaigns, domain.Campaign{
			ID:           id,
			AdvertiserID: s.advertiser,
			Name:         fmt.Sprintf("Demo %s %s", s.placement, s.bidding),
			Status:       domain.StatusActive,
			Budget:       domain.NewBudget(decimal.NewFromInt(s.total), decimal.Zero),
			Bidding:      domain.Bidding{Type: s.bidding, BidAmount: decimal.RequireFromString(s.bid)},
			Targeting:    s.targeting,
			Placement:    domain.Placement{Type: s.placement},
			Creative: domain.Creative{
				Title:          fmt.Sprintf("Creative %d", i+1),
				ImageURL:       fmt.Sprintf("https://cdn.example.com/creatives/%d.png", i+1),
				DestinationURL: fmt.Sprintf("https://shop.example.com/landing/%d", i+1),
			},
			Schedule:  domain.Schedule{StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 1, 0), Active: true},
			Lifecycle: domain.Lifecycle{FundsReserved: true, ApprovedAt: &now},
			CreatedAt: now.AddDate(0, 0, -i),
			UpdatedAt: now,
		})
	}

	limited := int64(1000)
	fx.Slots = []domain.Slot{
		{
			ID:            "demo-slot-sidebar",
			OwnerVendorID: "vendor-trailhead",
			PlacementType: domain.PlacementVendorStore,
			Position:      "sidebar",
			Pricing:       domain.SlotPricing{BaseRate: decimal.NewFromInt(10), VendorShare: decimal.RequireFromString("0.5")},
			Availability:  domain.Availability{Enabled: true},
			Rotation: []domain.RotationEntry{
				{CampaignID: "demo-campaign-5", Priority: 1, Weight: 3},
				{CampaignID: "demo-campaign-6", Priority: 1, Weight: 1, RemainingImpressions: &limited},
			},
			CreatedAt: now,
		},
		{
			ID:            "demo-slot-banner",
			OwnerVendorID: "vendor-trailhead",
			PlacementType: domain.PlacementVendorStore,
			Position:      "banner",
			Pricing:       domain.SlotPricing{BaseRate: decimal.NewFromInt(6), VendorShare: decimal.RequireFromString("0.4")},
			Availability:  domain.Availability{Enabled: true},
			CreatedAt:     now,
		},
	}
	return fx
}
