package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/validation"
)

// Config holds runtime settings for the gophauth CLI.
//
// Fields:
//   - ServerURL: base URL of the gophauth HTTP endpoint.
//   - StatePath: SQLite file holding the persisted session.
//   - PasswordPolicy, RequireEmail, RequirePhone: advisory registration checks.
//     The server stays authoritative.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerURL      string        `env:"GOPHAUTH_SERVER_URL"`
	StatePath      string        `env:"GOPHAUTH_STATE_PATH"`
	PasswordPolicy string        `env:"GOPHAUTH_PASSWORD_POLICY"`
	RequireEmail   bool          `env:"GOPHAUTH_REQUIRE_EMAIL"`
	RequirePhone   bool          `env:"GOPHAUTH_REQUIRE_PHONE"`
	RequestTimeout time.Duration `env:"GOPHAUTH_REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.StatePath = "gophauth.db"
	c.PasswordPolicy = string(validation.PasswordBasic)
	c.RequireEmail = true
	c.RequirePhone = true
	c.RequestTimeout = 10 * time.Second
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("server url %q must be an absolute http(s) URL", c.ServerURL))
	}
	if c.StatePath == "" {
		errs = append(errs, errors.New("state path must not be empty"))
	}
	if _, err := validation.ParsePasswordPolicy(c.PasswordPolicy); err != nil {
		errs = append(errs, err)
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}

	return errors.Join(errs...)
}

// Policy returns the advisory registration policy. Token issuance is decided
// by the server, so IssueToken is left unset.
func (c *Config) Policy() validation.Policy {
	pw, err := validation.ParsePasswordPolicy(c.PasswordPolicy)
	if err != nil {
		pw = validation.PasswordBasic
	}
	return validation.Policy{
		RequireEmail: c.RequireEmail,
		RequirePhone: c.RequirePhone,
		Password:     pw,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and the environment. Command-line flags are bound later
// by the cobra root command and take precedence over both.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	return cfg
}
