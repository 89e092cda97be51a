package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Env            string `mapstructure:"ENV"`
	Port           string `mapstructure:"PORT"`
	DatabaseURL    string `mapstructure:"DB_URL"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	JWTExpiryHours int    `mapstructure:"JWT_EXPIRY_HOURS"`
	CORSOrigins    string `mapstructure:"CORS_ORIGINS"`

	RateLimitPerMin int `mapstructure:"RATE_LIMIT_PER_MIN"`
	RateLimitBurst  int `mapstructure:"RATE_LIMIT_BURST"`

	// Redis configuration. An empty address disables the catalog cache.
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int           `mapstructure:"REDIS_CACHE_DB"`
	CatalogCacheTTL time.Duration `mapstructure:"CATALOG_CACHE_TTL"`

	// RabbitMQ. An empty URL keeps events in process.
	RabbitURL      string `mapstructure:"RABBIT_URL"`
	RabbitExchange string `mapstructure:"RABBIT_EXCHANGE"`

	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	TwilioAccountSID  string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string `mapstructure:"TWILIO_PHONE_NUMBER"`

	DigestCron          string `mapstructure:"DIGEST_CRON"`
	DigestLookbackHours int    `mapstructure:"DIGEST_LOOKBACK_HOURS"`
}

var defaults = map[string]interface{}{
	"ENV":                         "development",
	"PORT":                        "8080",
	"DB_URL":                      "",
	"JWT_SECRET":                  "",
	"JWT_EXPIRY_HOURS":            24,
	"CORS_ORIGINS":                "http://localhost:3000",
	"RATE_LIMIT_PER_MIN":          200,
	"RATE_LIMIT_BURST":            50,
	"REDIS_ADDR":                  "",
	"REDIS_PASSWORD":              "",
	"REDIS_CACHE_DB":              0,
	"CATALOG_CACHE_TTL":           "1h",
	"RABBIT_URL":                  "",
	"RABBIT_EXCHANGE":             "sitesync.events",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"TWILIO_ACCOUNT_SID":          "",
	"TWILIO_AUTH_TOKEN":           "",
	"TWILIO_PHONE_NUMBER":         "",
	"DIGEST_CRON":                 "0 9 * * *",
	"DIGEST_LOOKBACK_HOURS":       24,
}

// Load copies .env into the environment, then resolves each key from the
// environment first, the optional config file second and defaults last.
func Load(path string) (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryHours) * time.Hour
}

func (c *Config) DigestLookback() time.Duration {
	return time.Duration(c.DigestLookbackHours) * time.Hour
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// ValidateServe checks what the HTTP server cannot start without.
func (c *Config) ValidateServe() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DB_URL is required"))
	}
	if c.JWTSecret == "" && c.IsProduction() {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}
	if c.JWTExpiryHours <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRY_HOURS must be positive"))
	}
	return errors.Join(errs...)
}
