// Package config handles configuration for the edge: defaults, an optional
// JSON overlay, the environment and command-line flags, in that order.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/catalog"
	"github.com/dmitrijs2005/pokegate/internal/common"
	"github.com/dmitrijs2005/pokegate/internal/session"
)

// Config holds runtime settings for the edge. The edge never holds the
// signing secret; every session question goes to AuthorityURL.
type Config struct {
	Addr              string
	AuthorityURL      string
	AuthorityTimeout  time.Duration
	CatalogBaseURL    string
	ProtectedPrefixes []string
	AllowedOrigins    []string
	AssetsDir         string
	LogLevel          string
	ShutdownTimeout   time.Duration
}

func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.AuthorityURL = "http://127.0.0.1:8081"
	c.AuthorityTimeout = session.DefaultAuthorityTimeout
	c.CatalogBaseURL = catalog.DefaultBaseURL
	c.ProtectedPrefixes = []string{common.PokemonAPIPath}
	c.AssetsDir = "web/assets"
	c.LogLevel = "info"
	c.ShutdownTimeout = 10 * time.Second
}

// Validate requires an absolute http(s) authority URL and positive
// timeouts.
func (c *Config) Validate() error {
	u, err := url.Parse(c.AuthorityURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: authority url must be an absolute http(s) url, got %q", common.ErrConfiguration, c.AuthorityURL)
	}
	if c.AuthorityTimeout <= 0 {
		return fmt.Errorf("%w: authority timeout must be positive", common.ErrConfiguration)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", common.ErrConfiguration)
	}
	return nil
}

func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
