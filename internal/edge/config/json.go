package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pokegate/internal/flagx"
	"github.com/dmitrijs2005/pokegate/internal/timex"
)

// JsonConfig is the on-disk shape of the edge configuration.
type JsonConfig struct {
	Addr              string         `json:"addr"`
	AuthorityURL      string         `json:"authority_url"`
	AuthorityTimeout  timex.Duration `json:"authority_timeout"`
	CatalogBaseURL    string         `json:"catalog_url"`
	ProtectedPrefixes []string       `json:"protected_prefixes"`
	AllowedOrigins    []string       `json:"cors_origins"`
	AssetsDir         string         `json:"assets_dir"`
	LogLevel          string         `json:"log_level"`
	ShutdownTimeout   timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays the file named by -c/-config. Absent fields keep their
// values; unreadable or invalid files panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	for dst, v := range map[*string]string{
		&config.Addr:           c.Addr,
		&config.AuthorityURL:   c.AuthorityURL,
		&config.CatalogBaseURL: c.CatalogBaseURL,
		&config.AssetsDir:      c.AssetsDir,
		&config.LogLevel:       c.LogLevel,
	} {
		if v != "" {
			*dst = v
		}
	}

	if c.AuthorityTimeout.Duration > 0 {
		config.AuthorityTimeout = c.AuthorityTimeout.Duration
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.ProtectedPrefixes != nil {
		config.ProtectedPrefixes = c.ProtectedPrefixes
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
}
