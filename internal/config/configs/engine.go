package configs

import (
	"fmt"
	"time"
)

// Ledger tunes budget charging.
type Ledger struct {
	// MaxRetries bounds how often a charge that lost a race is retried.
	MaxRetries   int           `env:"MAX_RETRIES" envDefault:"3"`
	RetryBackoff time.Duration `env:"RETRY_BACKOFF" envDefault:"10ms"`
	// Timezone is the IANA zone whose midnight resets daily spend.
	Timezone      string        `env:"TIMEZONE" envDefault:"UTC"`
	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`
}

// Location loads Timezone.
func (c Ledger) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("ledger timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Selector configures ad selection.
type Selector struct {
	// BaseURL prefixes the tracking and click URLs handed to pages.
	BaseURL  string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	MaxCount int    `env:"MAX_COUNT" envDefault:"10"`
	// BudgetTiers are the ascending remaining-budget thresholds that each
	// add one priority point on simplified placements.
	BudgetTiers []float64 `env:"BUDGET_TIERS" envSeparator:"," envDefault:"1000,5000,10000,50000,100000"`
	// NewCampaignWindow is how long a campaign counts as recently created.
	NewCampaignWindow time.Duration `env:"NEW_CAMPAIGN_WINDOW" envDefault:"168h"`
}

// Revenue points at an optional YAML file overriding revenue shares and
// minimum prices.
type Revenue struct {
	ConfigFile string `env:"CONFIG_FILE"`
}
