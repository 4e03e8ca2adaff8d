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
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"marketplace-ads/internal/async"
	"marketplace-ads/internal/core/domain"
	"marketplace-ads/internal/core/port"
	"marketplace-ads/internal/metrics"
	"marketplace-ads/internal/tracing"
)

var _ port.CampaignUseCase = (*Ledger)(nil)

// LedgerConfig tunes the budget ledger.
type LedgerConfig struct {
	// MaxRetries bounds how often a charge that lost a race is retried.
	MaxRetries int
	// RetryBackoff is multiplied by the attempt number between retries.
	RetryBackoff time.Duration
	// Location decides the calendar day daily spend belongs to.
	Location *time.Location
}

// Ledger owns every mutation of campaign money and status. Charges go
// through the store's transactional primitive; notifications are sent in
// the background and never undo a committed change.
type Ledger struct {
	store    port.LedgerStore
	review   port.ReviewStore
	notifier port.Notifier
	rules    port.RuleEngine
	tasks    *async.Runner
	metrics  *metrics.Metrics
	log      *slog.Logger
	cfg      LedgerConfig
	now      func() time.Time
}

// NewLedger returns a ledger. notifier and rules may be nil.
func NewLedger(
	store port.LedgerStore,
	review port.ReviewStore,
	notifier port.Notifier,
	rules port.RuleEngine,
	tasks *async.Runner,
	m *metrics.Metrics,
	log *slog.Logger,
	cfg LedgerConfig,
) *Ledger {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Ledger{
		store:    store,
		review:   review,
		notifier: notifier,
		rules:    rules,
		tasks:    tasks,
		metrics:  m,
		log:      log,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Charge debits cost from the campaign of rec and stores rec. A charge that
// exhausts the budget completes the campaign and notifies the advertiser.
func (l *Ledger) Charge(ctx context.Context, rec *domain.FactRecord, cost decimal.Decimal) (res domain.SpendResult, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "ledger.Charge", trace.WithAttributes(
		attribute.String("campaign.id", rec.CampaignID),
		attribute.String("event.kind", string(rec.Kind)),
		attribute.String("cost", cost.String()),
	))
	defer span.End()

	now := l.now()
	for attempt := 0; ; attempt++ {
		res, err = l.store.ChargeCampaign(ctx, rec, cost, now, l.cfg.Location)
		if !errors.Is(err, domain.ErrConcurrencyConflict) || attempt >= l.cfg.MaxRetries {
			break
		}
		l.metrics.RecordChargeRetry()
		l.log.DebugContext(ctx, "retrying charge",
			slog.String("campaign_id", rec.CampaignID),
			slog.Int("attempt", attempt+1),
		)
		select {
		case <-ctx.Done():
			return domain.SpendResult{}, ctx.Err()
		case <-time.After(l.cfg.RetryBackoff * time.Duration(attempt+1)):
		}
	}

	l.metrics.RecordCharge(string(rec.Kind), string(rec.Placement), chargeResult(err),
		res.Charged.InexactFloat64(), rec.PlatformEarning.InexactFloat64(), rec.VendorEarning.InexactFloat64())
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicateEvent) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return domain.SpendResult{}, fmt.Errorf("charge campaign %s: %w", rec.CampaignID, err)
	}
	span.SetAttributes(attribute.String("charged", res.Charged.String()), attribute.Bool("completed", res.Completed))

	if res.Completed {
		l.metrics.RecordBudgetExhausted()
		l.log.InfoContext(ctx, "campaign budget exhausted",
			slog.String("campaign_id", rec.CampaignID),
			slog.String("advertiser_id", rec.AdvertiserID),
		)
		l.notify(ctx, port.Notification{
			AdvertiserID: rec.AdvertiserID,
			Type:         port.NotifyBudgetExhausted,
			CampaignID:   rec.CampaignID,
			Metadata:     map[string]string{"lastCharge": res.Charged.String()},
		})
	}
	return res, nil
}

// FindEvent returns a stored fact record.
func (l *Ledger) FindEvent(ctx context.Context, id string) (*domain.FactRecord, error) {
	return l.store.FindEvent(ctx, id)
}

func chargeResult(err error) string {
	switch {
	case err == nil:
		return "charged"
	case errors.Is(err, domain.ErrDuplicateEvent):
		return "duplicate"
	case errors.Is(err, domain.ErrBudgetExhausted):
		return "exhausted"
	case errors.Is(err, domain.ErrDailyLimitReached):
		return "daily_limit"
	case errors.Is(err, domain.ErrInactiveCampaign):
		return "inactive"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return "conflict"
	}
	return "error"
}

// Submit stores a new campaign. A campaign sent as draft stays a draft;
// anything else goes straight to review. Budget, stats and lifecycle are
// reset, and the targeting expression must compile.
func (l *Ledger) Submit(ctx context.Context, c domain.Campaign) (*domain.Campaign, error) {
	now := l.now()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	keepDraft := c.Status == domain.StatusDraft
	c.Status = domain.StatusDraft
	c.Budget = domain.NewBudget(c.Budget.Total, c.Budget.DailyLimit)
	c.Stats = domain.Stats{}
	c.Lifecycle = domain.Lifecycle{}
	c.CreatedAt = now
	c.UpdatedAt = now

	if expr := c.Targeting.Expression; expr != "" {
		if l.rules == nil {
			return nil, fmt.Errorf("%w: targeting expressions are not supported", domain.ErrInvalidArgument)
		}
		if err := l.rules.Compile(expr); err != nil {
			return nil, err
		}
	}
	if !keepDraft {
		if err := c.Submit(now); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := l.review.CreateCampaign(ctx, &c); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}

	l.log.InfoContext(ctx, "campaign submitted",
		slog.String("campaign_id", c.ID),
		slog.String("advertiser_id", c.AdvertiserID),
		slog.String("status", string(c.Status)),
	)
	return &c, nil
}

// SubmitDraft moves a stored draft into review.
func (l *Ledger) SubmitDraft(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	now := l.now()
	return l.transition(ctx, campaignID, "submit", "", func(c *domain.Campaign) error {
		return c.Submit(now)
	})
}

// Approve activates a campaign and reserves its budget from the advertiser
// balance in one store transaction.
func (l *Ledger) Approve(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	c, tx, err := l.review.ApproveCampaign(ctx, campaignID, l.now())
	if err != nil {
		return nil, fmt.Errorf("approve campaign %s: %w", campaignID, err)
	}
	l.log.InfoContext(ctx, "campaign approved",
		slog.String("campaign_id", c.ID),
		slog.String("advertiser_id", c.AdvertiserID),
		slog.String("reserved", tx.Amount.Neg().String()),
		slog.String("balance_after", tx.BalanceAfter.String()),
	)
	l.notify(ctx, port.Notification{
		AdvertiserID: c.AdvertiserID,
		Type:         port.NotifyCampaignApproved,
		CampaignID:   c.ID,
		Metadata:     map[string]string{"reserved": tx.Amount.Neg().String(), "balanceAfter": tx.BalanceAfter.String()},
	})
	return c, nil
}

func (l *Ledger) Reject(ctx context.Context, campaignID, reason string) (*domain.Campaign, error) {
	now := l.now()
	return l.transition(ctx, campaignID, "reject", port.NotifyCampaignRejected, func(c *domain.Campaign) error {
		return c.Reject(reason, now)
	})
}

func (l *Ledger) Pause(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	now := l.now()
	return l.transition(ctx, campaignID, "pause", port.NotifyCampaignPaused, func(c *domain.Campaign) error {
		return c.Pause(now)
	})
}

func (l *Ledger) Resume(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	now := l.now()
	return l.transition(ctx, campaignID, "resume", port.NotifyCampaignResumed, func(c *domain.Campaign) error {
		return c.Resume(now)
	})
}

func (l *Ledger) transition(ctx context.Context, campaignID, action string, nt port.NotificationType, fn func(c *domain.Campaign) error) (*domain.Campaign, error) {
	c, err := l.review.UpdateCampaign(ctx, campaignID, fn)
	if err != nil {
		return nil, fmt.Errorf("%s campaign %s: %w", action, campaignID, err)
	}
	l.log.InfoContext(ctx, "campaign "+action,
		slog.String("campaign_id", c.ID),
		slog.String("status", string(c.Status)),
	)
	if nt != "" {
		n := port.Notification{AdvertiserID: c.AdvertiserID, Type: nt, CampaignID: c.ID}
		if c.Lifecycle.RejectionReason != "" && nt == port.NotifyCampaignRejected {
			n.Metadata = map[string]string{"reason": c.Lifecycle.RejectionReason}
		}
		l.notify(ctx, n)
	}
	return c, nil
}

func (l *Ledger) notify(ctx context.Context, n port.Notification) {
	if l.notifier == nil {
		return
	}
	n.CreatedAt = l.now()
	l.tasks.Go(ctx, "notify."+string(n.Type), func(ctx context.Context) error {
		return l.notifier.Notify(ctx, n)
	})
}
