// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/mailer/resend"
	"github.com/dmitrymomot/contactform/pkg/mailer/smtp"
)

// Mail provider names accepted in MAIL_PROVIDER.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
)

// Config is the full application configuration.
type Config struct {
	// HTTP server.
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigin      string        `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`
	TrustProxy      bool          `env:"TRUST_PROXY" envDefault:"false"`

	// Contact notification destination and sender identity.
	Recipient     string `env:"CONTACT_RECIPIENT"`
	From          string `env:"CONTACT_FROM"`
	SubjectPrefix string `env:"CONTACT_SUBJECT_PREFIX"`

	// Admission control. An empty RedisURL keeps the store in-process.
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"5"`
	RedisURL        string        `env:"RATE_LIMIT_REDIS_URL"`

	// Mail transport. Provider selects which credentials below are used.
	Provider string `env:"MAIL_PROVIDER" envDefault:"smtp"`
	SMTP     smtp.Config
	Resend   resend.Config

	Sentry logger.SentryConfig
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Provider != ProviderSMTP && cfg.Provider != ProviderResend {
		return Config{}, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
	if cfg.RateLimitMax < 1 {
		return Config{}, fmt.Errorf("RATE_LIMIT_MAX must be at least 1, got %d", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimitWindow)
	}

	return cfg, nil
}
