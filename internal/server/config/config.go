// Package config handles configuration for the authority: defaults, an
// optional JSON overlay, the environment (including a .env file) and
// command-line flags, applied in that order.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/catalog"
	"github.com/dmitrijs2005/pokegate/internal/common"
)

// Config holds runtime settings for the authority.
//
// Fields:
//   - Addr: HTTP bind address.
//   - SecretKey: token signing secret. There is no default; startup fails
//     without one.
//   - Production: enables Secure and SameSite=Strict on the session cookie.
//   - Username / Password: the single account allowed to log in.
//   - CatalogBaseURL: PokéAPI compatible upstream.
//   - ProtectedPrefixes: paths checked by the edge interceptor.
//   - AllowedOrigins: CORS origins; empty means same-origin only.
//   - AssetsDir: directory served under /assets.
//   - LogLevel: debug, info, warn or error.
//   - ShutdownTimeout: grace period for in-flight requests.
type Config struct {
	Addr              string
	SecretKey         string
	Production        bool
	Username          string
	Password          string
	CatalogBaseURL    string
	ProtectedPrefixes []string
	AllowedOrigins    []string
	AssetsDir         string
	LogLevel          string
	ShutdownTimeout   time.Duration
}

// LoadDefaults populates Config with development defaults. SecretKey is
// intentionally left empty.
func (c *Config) LoadDefaults() {
	c.Addr = ":8081"
	c.Username = "admin"
	c.Password = "admin"
	c.CatalogBaseURL = catalog.DefaultBaseURL
	c.ProtectedPrefixes = []string{common.PokemonAPIPath}
	c.AssetsDir = "web/assets"
	c.LogLevel = "info"
	c.ShutdownTimeout = 10 * time.Second
}

// Validate reports settings the authority cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SecretKey) == "" {
		return fmt.Errorf("%w: signing secret is not set (use -s or AUTH_SECRET)", common.ErrConfiguration)
	}
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("%w: login credentials are not set", common.ErrConfiguration)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", common.ErrConfiguration)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
