package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts fx into the database in one transaction. Rows that already
// exist are left alone.
func Seed(ctx context.Context, pool *pgxpool.Pool, fx Fixtures) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, a := range fx.Advertisers {
			_, err := tx.Exec(ctx, `INSERT INTO advertisers (id, name, account_balance, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5) ON CONFLICT DO NOTHING`,
				a.ID, a.Name, a.AccountBalance, a.CreatedAt, a.UpdatedAt)
			if err != nil {
				return err
			}
		}

		for _, c := range fx.Campaigns {
			_, err := tx.Exec(ctx, `INSERT INTO campaigns
    (id, advertiser_id, name, status, placement_type, budget_total, budget_spent, budget_remaining,
     daily_limit, bidding_type, bid_amount, max_bid, start_date, end_date, schedule_active,
     placement, targeting, creative, lifecycle, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21) ON CONFLICT DO NOTHING`,
				c.ID, c.AdvertiserID, c.Name, c.Status, c.Placement.Type,
				c.Budget.Total, c.Budget.Spent, c.Budget.Remaining, c.Budget.DailyLimit,
				c.Bidding.Type, c.Bidding.BidAmount, c.Bidding.MaxBid,
				c.Schedule.StartDate, c.Schedule.EndDate, c.Schedule.Active,
				c.Placement, c.Targeting, c.Creative, c.Lifecycle, c.CreatedAt, c.UpdatedAt)
			if err != nil {
				return err
			}
		}

		for _, s := range fx.Slots {
			_, err := tx.Exec(ctx, `INSERT INTO slots
    (id, owner_vendor_id, placement_type, position, base_rate, vendor_share, enabled, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8) ON CONFLICT DO NOTHING`,
				s.ID, s.OwnerVendorID, s.PlacementType, s.Position,
				s.Pricing.BaseRate, s.Pricing.VendorShare, s.Availability.Enabled, s.CreatedAt)
			if err != nil {
				return err
			}
			for _, r := range s.Rotation {
				_, err = tx.Exec(ctx, `INSERT INTO slot_rotation
    (slot_id, campaign_id, priority, weight, remaining_impressions, last_shown)
VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT DO NOTHING`,
					s.ID, r.CampaignID, r.Priority, r.Weight, r.RemainingImpressions, r.LastShown)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}
