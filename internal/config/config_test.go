package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-ads/internal/config/configs"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "dev")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, configs.StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Ledger.MaxRetries)
	assert.Equal(t, []float64{1000, 5000, 10000, 50000, 100000}, cfg.Selector.BudgetTiers)
	assert.Equal(t, 7*24*time.Hour, cfg.Selector.NewCampaignWindow)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("LEDGER_TIMEZONE", "Asia/Tokyo")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "json", cfg.Log.SlogFormat())

	loc, err := cfg.Ledger.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"prod needs secret", map[string]string{"ENV": "prod"}, "AUTH_JWT_SECRET"},
		{"unknown driver", map[string]string{"ENV": "dev", "STORE_DRIVER": "mongo"}, "STORE_DRIVER"},
		{"bad timezone", map[string]string{"ENV": "dev", "LEDGER_TIMEZONE": "Mars/Olympus"}, "timezone"},
		{"tiers out of order", map[string]string{"ENV": "dev", "SELECTOR_BUDGET_TIERS": "5000,1000"}, "ascending"},
		{"zero max count", map[string]string{"ENV": "dev", "SELECTOR_MAX_COUNT": "0"}, "SELECTOR_MAX_COUNT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	assert.Equal(t, "DEBUG", configs.Logger{Level: "Debug"}.SlogLevel().String())
	assert.Equal(t, "WARN", configs.Logger{Level: "warning"}.SlogLevel().String())
	assert.Equal(t, "INFO", configs.Logger{Level: "verbose"}.SlogLevel().String())

	opts := configs.Logger{Level: "error", Source: true}.HandlerOptions()
	assert.True(t, opts.AddSource)
	assert.Equal(t, "ERROR", opts.Level.Level().String())
}
