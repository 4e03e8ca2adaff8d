package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"

	"marketplace-ads/internal/config/configs"
)

// Config aggregates all configuration sections of the application. Nested
// structs are tagged with envPrefix so their fields are parsed with that
// prefix; see the configs package for defaults.
type Config struct {
	// Env is the deployment environment (prod, dev).
	Env string `env:"ENV" envDefault:"prod"`

	HTTP configs.HTTP   `envPrefix:"HTTP_"`
	Rate configs.Rate   `envPrefix:"RATE_"`
	Auth configs.Auth   `envPrefix:"AUTH_"`
	Log  configs.Logger `envPrefix:"LOG_"`

	Store configs.Store    `envPrefix:"STORE_"`
	Psql  configs.Postgres `envPrefix:"PSQL_"`
	Redis configs.Redis    `envPrefix:"REDIS_"`
	Kafka configs.Kafka    `envPrefix:"KAFKA_"`

	Tracing  configs.Tracing  `envPrefix:"TRACING_"`
	Ledger   configs.Ledger   `envPrefix:"LEDGER_"`
	Selector configs.Selector `envPrefix:"SELECTOR_"`
	Revenue  configs.Revenue  `envPrefix:"REVENUE_"`
}

// Load reads configuration from environment variables and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks constraints env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	switch c.Store.Driver {
	case configs.StoreDriverPostgres, configs.StoreDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER: unknown driver %q", c.Store.Driver))
	}
	if c.Env == "prod" && c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required in prod"))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, errors.New("REDIS_ADDRESS is required when the cache is enabled"))
	}
	if c.Ledger.MaxRetries < 0 {
		errs = append(errs, errors.New("LEDGER_MAX_RETRIES must not be negative"))
	}
	if _, err := c.Ledger.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.Selector.MaxCount <= 0 {
		errs = append(errs, errors.New("SELECTOR_MAX_COUNT must be positive"))
	}
	if !slices.IsSorted(c.Selector.BudgetTiers) {
		errs = append(errs, errors.New("SELECTOR_BUDGET_TIERS must be ascending"))
	}
	if c.Rate.Limit < 0 || (c.Rate.Limit > 0 && c.Rate.Burst <= 0) {
		errs = append(errs, errors.New("RATE_LIMIT and RATE_BURST must be positive"))
	}
	return errors.Join(errs...)
}
