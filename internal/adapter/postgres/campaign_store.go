package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"marketplace-ads/internal/core/domain"
	"marketplace-ads/internal/core/port"
)

var _ port.CampaignStore = (*CampaignStore)(nil)

const campaignColumns = `id, advertiser_id, name, status, placement_type,
	budget_total, budget_spent, budget_remaining, daily_limit, daily_spent, daily_spent_on,
	bidding_type, bid_amount, max_bid, start_date, end_date, schedule_active,
	impressions, clicks, conversions, placement, targeting, creative, lifecycle,
	created_at, updated_at`

const factColumns = `id, kind, campaign_id, advertiser_id, slot_id, placement, position,
	vendor_id, category, device, user_agent, impression_id, click_id,
	cost, platform_earning, vendor_earning, clicked, converted, occurred_at`

// CampaignStore implements port.CampaignStore on PostgreSQL. Budget
// mutations run in serializable transactions that lock the campaign row
// with SELECT ... FOR UPDATE.
type CampaignStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewCampaignStore returns a store backed by pool.
func NewCampaignStore(pool *pgxpool.Pool) *CampaignStore {
	return &CampaignStore{pool: pool, now: time.Now}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*domain.Campaign, error) {
	var (
		c  domain.Campaign
		pt domain.PlacementType
	)
	err := row.Scan(
		&c.ID, &c.AdvertiserID, &c.Name, &c.Status, &pt,
		&c.Budget.Total, &c.Budget.Spent, &c.Budget.Remaining,
		&c.Budget.DailyLimit, &c.Budget.DailySpent, &c.Budget.DailySpentOn,
		&c.Bidding.Type, &c.Bidding.BidAmount, &c.Bidding.MaxBid,
		&c.Schedule.StartDate, &c.Schedule.EndDate, &c.Schedule.Active,
		&c.Stats.Impressions, &c.Stats.Clicks, &c.Stats.Conversions,
		&c.Placement, &c.Targeting, &c.Creative, &c.Lifecycle,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Placement.Type = pt
	c.Budget.DailySpentOn = c.Budget.DailySpentOn.UTC()
	if err = c.Validate(); err != nil {
		return nil, fmt.Errorf("campaign %s is malformed: %w", c.ID, err)
	}
	return &c, nil
}

// GetCampaign reads the campaign row, bypassing any cache.
func (s *CampaignStore) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	c, err := scanCampaign(row)
	if err != nil {
		return nil, mapErr(err, "campaign "+id)
	}
	return c, nil
}

// QueryActiveCampaigns returns serving campaigns ordered by id.
func (s *CampaignStore) QueryActiveCampaigns(ctx context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error) {
	ids := filter.IDs
	if ids == nil {
		ids = []string{}
	}
	rows, err := s.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns
		WHERE status = 'active'
		  AND schedule_active
		  AND $1 BETWEEN start_date AND end_date
		  AND budget_remaining > 0
		  AND ($2 = '' OR placement_type = $2)
		  AND (cardinality($3::text[]) = 0 OR id = ANY($3))
		ORDER BY id`,
		s.now(), string(filter.PlacementType), ids)
	if err != nil {
		return nil, mapErr(err, "query active campaigns")
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		c, err := scanCampaign(row)
		if err != nil {
			return domain.Campaign{}, err
		}
		return *c, nil
	})
	if err != nil {
		return nil, mapErr(err, "query active campaigns")
	}
	return out, nil
}

// GetSlot reads a slot and its rotation queue.
func (s *CampaignStore) GetSlot(ctx context.Context, id string) (*domain.Slot, error) {
	var sl domain.Slot
	err := s.pool.QueryRow(ctx, `SELECT id, owner_vendor_id, placement_type, position,
		base_rate, vendor_share, enabled, created_at FROM slots WHERE id = $1`, id).
		Scan(&sl.ID, &sl.OwnerVendorID, &sl.PlacementType, &sl.Position,
			&sl.Pricing.BaseRate, &sl.Pricing.VendorShare, &sl.Availability.Enabled, &sl.CreatedAt)
	if err != nil {
		return nil, mapErr(err, "slot "+id)
	}

	rows, err := s.pool.Query(ctx, `SELECT campaign_id, priority, weight, remaining_impressions, last_shown
		FROM slot_rotation WHERE slot_id = $1 ORDER BY priority DESC, campaign_id`, id)
	if err != nil {
		return nil, mapErr(err, "slot "+id+" rotation")
	}
	sl.Rotation, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RotationEntry, error) {
		var e domain.RotationEntry
		err := row.Scan(&e.CampaignID, &e.Priority, &e.Weight, &e.RemainingImpressions, &e.LastShown)
		return e, err
	})
	if err != nil {
		return nil, mapErr(err, "slot "+id+" rotation")
	}
	return &sl, nil
}

// TouchRotation stamps the rotation entry and consumes one bounded
// impression.
func (s *CampaignStore) TouchRotation(ctx context.Context, slotID, campaignID string, shownAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `UPDATE slot_rotation
		SET last_shown = $3,
		    remaining_impressions = CASE WHEN remaining_impressions > 0
		        THEN remaining_impressions - 1 ELSE remaining_impressions END
		WHERE slot_id = $1 AND campaign_id = $2`, slotID, campaignID, shownAt)
	if err != nil {
		return mapErr(err, "slot "+slotID+" rotation")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("slot %s has no rotation entry for campaign %s: %w", slotID, campaignID, domain.ErrNotFound)
	}
	return nil
}

// inTx runs fn in a serializable transaction and commits when fn succeeds.
func (s *CampaignStore) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()
	return fn(tx)
}

func lockCampaign(ctx context.Context, tx pgx.Tx, id string) (*domain.Campaign, error) {
	row := tx.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1 FOR UPDATE`, id)
	return scanCampaign(row)
}

func writeCampaign(ctx context.Context, tx pgx.Tx, c *domain.Campaign) error {
	_, err := tx.Exec(ctx, `UPDATE campaigns SET
		name = $2, status = $3, placement_type = $4,
		budget_total = $5, budget_spent = $6, budget_remaining = $7,
		daily_limit = $8, daily_spent = $9, daily_spent_on = $10,
		bidding_type = $11, bid_amount = $12, max_bid = $13,
		start_date = $14, end_date = $15, schedule_active = $16,
		impressions = $17, clicks = $18, conversions = $19,
		placement = $20, targeting = $21, creative = $22, lifecycle = $23,
		updated_at = $24
		WHERE id = $1`,
		c.ID, c.Name, c.Status, c.Placement.Type,
		c.Budget.Total, c.Budget.Spent, c.Budget.Remaining,
		c.Budget.DailyLimit, c.Budget.DailySpent, c.Budget.DailySpentOn,
		c.Bidding.Type, c.Bidding.BidAmount, c.Bidding.MaxBid,
		c.Schedule.StartDate, c.Schedule.EndDate, c.Schedule.Active,
		c.Stats.Impressions, c.Stats.Clicks, c.Stats.Conversions,
		c.Placement, c.Targeting, c.Creative, c.Lifecycle,
		c.UpdatedAt,
	)
	return err
}

// ChargeCampaign implements port.LedgerStore.
func (s *CampaignStore) ChargeCampaign(ctx context.Context, rec *domain.FactRecord, cost decimal.Decimal, now time.Time, loc *time.Location) (domain.SpendResult, error) {
	var res domain.SpendResult
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		c, err := lockCampaign(ctx, tx, rec.CampaignID)
		if err != nil {
			return err
		}
		var seen bool
		if err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM fact_records WHERE id = $1)`, rec.ID).Scan(&seen); err != nil {
			return err
		}
		if seen {
			return fmt.Errorf("event %s: %w", rec.ID, domain.ErrDuplicateEvent)
		}

		if res, err = c.ApplySpend(cost, now, loc); err != nil {
			return err
		}
		c.CountEvent(rec.Kind)
		rec.AdvertiserID = c.AdvertiserID
		rec.Settle(res.Charged)

		tag, err := tx.Exec(ctx, `INSERT INTO fact_records (`+factColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
			ON CONFLICT (id) DO NOTHING`,
			rec.ID, rec.Kind, rec.CampaignID, rec.AdvertiserID, rec.SlotID, rec.Placement, rec.Position,
			rec.VendorID, rec.Category, rec.Device, rec.UserAgent, rec.ImpressionID, rec.ClickID,
			rec.Cost, rec.PlatformEarning, rec.VendorEarning, rec.Clicked, rec.Converted, rec.OccurredAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("event %s: %w", rec.ID, domain.ErrDuplicateEvent)
		}
		return writeCampaign(ctx, tx, c)
	})
	if err != nil {
		return domain.SpendResult{}, ledgerErr(err, rec.CampaignID)
	}
	return res, nil
}

// ledgerErr keeps domain sentinels raised inside a transaction and maps
// driver errors.
func ledgerErr(err error, campaignID string) error {
	for _, sentinel := range []error{
		domain.ErrDuplicateEvent,
		domain.ErrBudgetExhausted,
		domain.ErrDailyLimitReached,
		domain.ErrInactiveCampaign,
		domain.ErrInsufficientAdvertiserBalance,
		domain.ErrInvalidArgument,
		domain.ErrNotFound,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return mapErr(err, "campaign "+campaignID)
}

// FindEvent reads a fact record.
func (s *CampaignStore) FindEvent(ctx context.Context, id string) (*domain.FactRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	var r domain.FactRecord
	err := s.pool.QueryRow(ctx, `SELECT `+factColumns+` FROM fact_records WHERE id = $1`, id).Scan(
		&r.ID, &r.Kind, &r.CampaignID, &r.AdvertiserID, &r.SlotID, &r.Placement, &r.Position,
		&r.VendorID, &r.Category, &r.Device, &r.UserAgent, &r.ImpressionID, &r.ClickID,
		&r.Cost, &r.PlatformEarning, &r.VendorEarning, &r.Clicked, &r.Converted, &r.OccurredAt)
	if err != nil {
		return nil, mapErr(err, "event "+id)
	}
	return &r, nil
}

// CreateCampaign inserts a new campaign.
func (s *CampaignStore) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx, `INSERT INTO campaigns (`+campaignColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26)`,
		c.ID, c.AdvertiserID, c.Name, c.Status, c.Placement.Type,
		c.Budget.Total, c.Budget.Spent, c.Budget.Remaining,
		c.Budget.DailyLimit, c.Budget.DailySpent, c.Budget.DailySpentOn,
		c.Bidding.Type, c.Bidding.BidAmount, c.Bidding.MaxBid,
		c.Schedule.StartDate, c.Schedule.EndDate, c.Schedule.Active,
		c.Stats.Impressions, c.Stats.Clicks, c.Stats.Conversions,
		c.Placement, c.Targeting, c.Creative, c.Lifecycle,
		c.CreatedAt, c.UpdatedAt,
	)
	return mapErr(err, "campaign "+c.ID)
}

// ApproveCampaign locks the campaign and its advertiser, reserves the
// campaign total from the balance and writes the audit transaction.
func (s *CampaignStore) ApproveCampaign(ctx context.Context, campaignID string, now time.Time) (*domain.Campaign, domain.AccountTransaction, error) {
	var (
		out *domain.Campaign
		at  domain.AccountTransaction
	)
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		c, err := lockCampaign(ctx, tx, campaignID)
		if err != nil {
			return err
		}

		var adv *domain.Advertiser
		var a domain.Advertiser
		err = tx.QueryRow(ctx, `SELECT id, name, account_balance, created_at, updated_at
			FROM advertisers WHERE id = $1 FOR UPDATE`, c.AdvertiserID).
			Scan(&a.ID, &a.Name, &a.AccountBalance, &a.CreatedAt, &a.UpdatedAt)
		switch {
		case err == nil:
			adv = &a
		case !errors.Is(err, pgx.ErrNoRows):
			return err
		}

		if at, err = c.Approve(adv, now); err != nil {
			return err
		}
		at.ID = uuid.NewString()

		if _, err = tx.Exec(ctx, `UPDATE advertisers SET account_balance = $2, updated_at = $3 WHERE id = $1`,
			adv.ID, adv.AccountBalance, adv.UpdatedAt); err != nil {
			return err
		}
		if _, err = tx.Exec(ctx, `INSERT INTO account_transactions
			(id, advertiser_id, campaign_id, kind, amount, balance_after, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			at.ID, at.AdvertiserID, at.CampaignID, at.Kind, at.Amount, at.BalanceAfter, at.CreatedAt); err != nil {
			return err
		}
		if err = writeCampaign(ctx, tx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, domain.AccountTransaction{}, ledgerErr(err, campaignID)
	}
	return out, at, nil
}

// UpdateCampaign applies fn to the locked campaign row.
func (s *CampaignStore) UpdateCampaign(ctx context.Context, id string, fn func(c *domain.Campaign) error) (*domain.Campaign, error) {
	var out *domain.Campaign
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		c, err := lockCampaign(ctx, tx, id)
		if err != nil {
			return err
		}
		if err = fn(c); err != nil {
			return err
		}
		if err = c.Validate(); err != nil {
			return err
		}
		out = c
		return writeCampaign(ctx, tx, c)
	})
	if err != nil {
		return nil, ledgerErr(err, id)
	}
	return out, nil
}

// GetStats aggregates fact records with occurred_at in [From, To].
func (s *CampaignStore) GetStats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	args := []any{req.From, req.To}
	where := ""
	if req.CampaignID != nil {
		args = append(args, *req.CampaignID)
		where += fmt.Sprintf(" AND campaign_id = $%d", len(args))
	}
	if req.AdvertiserID != nil {
		args = append(args, *req.AdvertiserID)
		where += fmt.Sprintf(" AND advertiser_id = $%d", len(args))
	}
	query := fmt.Sprintf(`SELECT
		count(*) FILTER (WHERE kind = 'impression'),
		count(*) FILTER (WHERE kind = 'click'),
		count(*) FILTER (WHERE kind = 'conversion'),
		COALESCE(sum(cost), 0),
		COALESCE(sum(platform_earning), 0),
		COALESCE(sum(vendor_earning), 0)
		FROM fact_records WHERE occurred_at >= $1 AND occurred_at <= $2%s`, where)

	var resp port.StatsResp
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&resp.Impressions, &resp.Clicks, &resp.Conversions,
		&resp.Spend, &resp.PlatformRevenue, &resp.VendorRevenue)
	if err != nil {
		return nil, mapErr(err, "stats")
	}
	return &resp, nil
}
