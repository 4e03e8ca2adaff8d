package configs

import "time"

// Redis configures the read-through cache in front of active campaign
// queries.
type Redis struct {
	Enabled  bool          `env:"ENABLED" envDefault:"false"`
	Addr     string        `env:"ADDRESS" envDefault:"localhost:6379"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"2s"`
}

// Kafka configures the advertiser notification producer. With no brokers
// notifications are only logged.
type Kafka struct {
	Brokers           []string `env:"BROKERS" envSeparator:","`
	NotificationTopic string   `env:"NOTIFICATION_TOPIC" envDefault:"advertiser-notifications"`
}

// Tracing configures the OpenTelemetry Jaeger exporter.
type Tracing struct {
	Enabled        bool   `env:"ENABLED" envDefault:"false"`
	JaegerEndpoint string `env:"JAEGER_ENDPOINT" envDefault:"http://localhost:14268/api/traces"`
	ServiceName    string `env:"SERVICE_NAME" envDefault:"marketplace-ads"`
}
