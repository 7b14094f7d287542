package smtp

// Config holds SMTP transport configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Host     string `env:"SMTP_HOST"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	// SSL forces implicit TLS (port 465 style). When false the dialer
	// upgrades via STARTTLS if the server offers it.
	SSL bool `env:"SMTP_SSL" envDefault:"false"`
	// InsecureSkipVerify disables TLS certificate verification.
	// Only for test servers with self-signed certificates.
	InsecureSkipVerify bool `env:"SMTP_INSECURE_SKIP_VERIFY" envDefault:"false"`
}
