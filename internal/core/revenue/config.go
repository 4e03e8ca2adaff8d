package revenue

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"marketplace-ads/internal/core/domain"
)

// Config is the revenue model of the platform. It is loaded once at
// startup and read-only afterwards.
type Config struct {
	Shares     map[domain.PlacementType]domain.RevenueShare
	MinimumCPM decimal.Decimal
	MinimumCPC decimal.Decimal
}

// DefaultConfig returns the stock revenue model: the platform keeps all
// revenue except on vendor stores, where the hosting vendor receives 40%.
func DefaultConfig() Config {
	full := domain.RevenueShare{PlatformPercent: decimal.NewFromInt(100), VendorPercent: decimal.Zero}
	return Config{
		Shares: map[domain.PlacementType]domain.RevenueShare{
			domain.PlacementHomepage:         full,
			domain.PlacementCategory:         full,
			domain.PlacementSponsoredProduct: full,
			domain.PlacementVendorStore: {
				PlatformPercent: decimal.NewFromInt(60),
				VendorPercent:   decimal.NewFromInt(40),
			},
		},
		MinimumCPM: decimal.NewFromInt(1),
		MinimumCPC: decimal.RequireFromString("0.10"),
	}
}

// Validate checks that every placement type has a share and that each share
// sums to 100.
func (c Config) Validate() error {
	var errs []error
	for _, p := range domain.PlacementTypes {
		s, ok := c.Shares[p]
		if !ok {
			errs = append(errs, fmt.Errorf("placement %s: no revenue share", p))
			continue
		}
		if s.PlatformPercent.IsNegative() || s.VendorPercent.IsNegative() {
			errs = append(errs, fmt.Errorf("placement %s: negative share", p))
		}
		if !s.PlatformPercent.Add(s.VendorPercent).Equal(hundred) {
			errs = append(errs, fmt.Errorf("placement %s: shares %s + %s do not sum to 100",
				p, s.PlatformPercent, s.VendorPercent))
		}
	}
	for p := range c.Shares {
		if !p.Valid() {
			errs = append(errs, fmt.Errorf("unknown placement type %q", p))
		}
	}
	if c.MinimumCPM.IsNegative() || c.MinimumCPC.IsNegative() {
		errs = append(errs, errors.New("minimum prices must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	return nil
}

type fileShare struct {
	PlatformShare float64 `yaml:"platformShare"`
	VendorShare   float64 `yaml:"vendorShare"`
}

type fileConfig struct {
	MinimumCPM *float64                           `yaml:"minimumCpm"`
	MinimumCPC *float64                           `yaml:"minimumCpc"`
	Shares     map[domain.PlacementType]fileShare `yaml:"shares"`
}

// LoadConfig returns DefaultConfig overridden by the YAML file at path.
// An empty path yields the defaults. Placement types absent from the file
// keep their default share.
//
//	minimumCpm: 1.5
//	shares:
//	  vendor_store: {platformShare: 70, vendorShare: 30}
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read revenue config: %w", err)
	}
	var fc fileConfig
	if err = yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("parse revenue config %s: %w", path, err)
	}

	if fc.MinimumCPM != nil {
		cfg.MinimumCPM = decimal.NewFromFloat(*fc.MinimumCPM)
	}
	if fc.MinimumCPC != nil {
		cfg.MinimumCPC = decimal.NewFromFloat(*fc.MinimumCPC)
	}
	for p, s := range fc.Shares {
		cfg.Shares[p] = domain.RevenueShare{
			PlatformPercent: decimal.NewFromFloat(s.PlatformShare),
			VendorPercent:   decimal.NewFromFloat(s.VendorShare),
		}
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("revenue config %s: %w", path, err)
	}
	return cfg, nil
}
