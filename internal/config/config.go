package config // package config loads application configuration from environment variables

import (
	"strings"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The store settings are optional: when either is
// empty the service runs catalog-only and booking endpoints report 500.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	DatabaseURL    string        // store connection string (mongodb://, mongodb+srv:// or mysql://)
	DatabaseName   string        // database name inside the store
	ConnectTimeout time.Duration // timeout for the initial store connection and ping
	LogLevel       string        // zerolog level name
	RabbitURL      string        // AMQP broker URL; empty disables booking events
	BookingLogDir  string        // directory the booking consumer appends to
}

// Load reads configuration values from environment variables and returns a
// Config.  Unlike the store credentials of a classic deployment nothing here
// is mandatory; defaults keep the process bootable for the catalog.
func Load() Config {
	return Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("PORT", envStr("APP_PORT", "8000")),
		DatabaseURL:    strings.TrimSpace(envStr("DATABASE_URL", "")),
		DatabaseName:   strings.TrimSpace(envStr("DATABASE_NAME", "")),
		ConnectTimeout: envDur("DB_CONNECT_TIMEOUT", 5*time.Second),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		RabbitURL:      rabbitURL(),
		BookingLogDir:  envStr("BOOKING_LOG_DIR", "logs"),
	}
}

// StoreConfigured reports whether both store settings are present.
func (c Config) StoreConfigured() bool {
	return c.DatabaseURL != "" && c.DatabaseName != ""
}

// rabbitURL honours RABBITMQ_URL first and falls back to AMQP_URL.
func rabbitURL() string {
	if v := envStr("RABBITMQ_URL", ""); v != "" {
		return v
	}
	return envStr("AMQP_URL", "")
}
