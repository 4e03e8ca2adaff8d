package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advertiser owns campaigns and pays for them from its account balance.
type Advertiser struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	AccountBalance decimal.Decimal `json:"accountBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// TransactionKind labels account transactions.
type TransactionKind string

const TransactionFundsReserved TransactionKind = "campaign_funds_reserved"

// AccountTransaction is the audit trail of an advertiser balance movement.
type AccountTransaction struct {
	ID           string          `json:"id"`
	AdvertiserID string          `json:"advertiserId"`
	CampaignID   string          `json:"campaignId"`
	Kind         TransactionKind `json:"kind"`
	Amount       decimal.Decimal `json:"amount"` // negative for debits
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	CreatedAt    time.Time       `json:"createdAt"`
}
