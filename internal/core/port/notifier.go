package port

import (
	"context"
	"time"
)

// NotificationType names advertiser notifications.
type NotificationType string

const (
	NotifyBudgetExhausted  NotificationType = "campaign_budget_exhausted"
	NotifyCampaignApproved NotificationType = "campaign_approved"
	NotifyCampaignRejected NotificationType = "campaign_rejected"
	NotifyCampaignPaused   NotificationType = "campaign_paused"
	NotifyCampaignResumed  NotificationType = "campaign_resumed"
)

// Notification is a message for an advertiser.
type Notification struct {
	AdvertiserID string            `json:"advertiserId"`
	Type         NotificationType  `json:"type"`
	CampaignID   string            `json:"campaignId"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// Notifier delivers advertiser notifications. Delivery is best-effort;
// callers never roll back on failure.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
