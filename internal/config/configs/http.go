package configs

import "time"

// HTTP defines configuration for the HTTP server.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port         uint16        `env:"PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	// ShutdownTimeout bounds the graceful shutdown of in-flight requests.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Rate limits the tracking endpoints. Limit is the sustained number of
// events per second accepted across all clients; Burst allows short spikes
// above it. A zero Limit disables limiting.
type Rate struct {
	Limit float64 `env:"LIMIT" envDefault:"500"`
	Burst int     `env:"BURST" envDefault:"1000"`
}

// Auth configures bearer token verification for advertiser and admin
// endpoints.
type Auth struct {
	// JWTSecret is the HMAC key tokens are signed with. Required in prod.
	JWTSecret string `env:"JWT_SECRET"`
}
