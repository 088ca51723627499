package config

import "time"

// Config holds runtime settings for the pokegate terminal client.
//
// Fields:
//   - ServerURL: base URL of the authority or the edge.
//   - RequestTimeout: upper bound for a single HTTP request.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

// LoadDefaults points the client at a local edge.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
