// Package config loads the service configuration from environment variables
// and command line flags. Missing required settings fail the load, so a
// misconfigured deployment dies at startup instead of at the first request.
package config

import (
	"time"

	"github.com/goliatone/go-errors"
	flags "github.com/jessevdk/go-flags"
)

// Config holds every runtime setting of the service.
type Config struct {
	ListenAddr  string `long:"listen" env:"YABOOK_LISTEN" default:":5000" description:"Address the HTTP server binds to"`
	Environment string `long:"env" env:"WORK_ENV" default:"development" description:"Deployment environment (development, testing, production)"`
	DatabaseURL string `long:"db-url" env:"DB_URL" required:"true" description:"Database connection string"`
	PublicURL   string `long:"public-url" env:"YABOOK_PUBLIC_URL" default:"http://localhost:5000" description:"Externally visible base URL, used in verification links"`

	ItemsPerPage int `long:"items-per-page" env:"YABOOK_ITEMS_PER_PAGE" default:"3" description:"Page size for list endpoints"`

	JWTSecretKey         string `long:"jwt-secret-key" env:"JWT_SECRET_KEY" required:"true" description:"HMAC key for session tokens"`
	SecretKey            string `long:"secret-key" env:"SECRET_KEY" required:"true" description:"Secret for verification token signing"`
	SecurityPasswordSalt string `long:"security-password-salt" env:"SECURITY_PASSWORD_SALT" required:"true" description:"Salt mixed into the verification token key"`

	AccessTokenExpires  int `long:"access-token-expires" env:"YABOOK_ACCESS_TOKEN_EXPIRES" default:"600" description:"Access token lifetime in seconds"`
	RefreshTokenExpires int `long:"refresh-token-expires" env:"YABOOK_REFRESH_TOKEN_EXPIRES" default:"86400" description:"Refresh token lifetime in seconds"`
	EmailTokenExpires   int `long:"email-token-expires" env:"YABOOK_EMAIL_TOKEN_EXPIRES" default:"3600" description:"Verification token max age in seconds"`

	MailHost          string `long:"mail-host" env:"MAIL_HOST" description:"SMTP host:port, empty disables outbound mail"`
	MailUsername      string `long:"mail-username" env:"MAIL_USERNAME" description:"SMTP username"`
	MailPassword      string `long:"mail-password" env:"MAIL_PASSWORD" description:"SMTP password"`
	MailDefaultSender string `long:"mail-default-sender" env:"MAIL_DEFAULT_SENDER" default:"yabook@nowhere.org" description:"From address on outbound mail"`
	MailSkipVerify    bool   `long:"mail-skip-verify" env:"MAIL_SKIP_VERIFY" description:"Skip TLS certificate verification on the mail host"`
}

// Load parses args (usually os.Args[1:]) on top of the environment.
func Load(args []string) (*Config, error) {
	cfg := &Config{}

	parser := flags.NewParser(cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "could not load configuration")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpires) * time.Second
}

func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpires) * time.Second
}

func (c *Config) EmailTokenMaxAge() time.Duration {
	return time.Duration(c.EmailTokenExpires) * time.Second
}
