package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/flagx"
	"github.com/dmitrijs2005/pokegate/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// Durations use timex.Duration, which accepts both strings such as "10s" and
// integer nanoseconds.
type JsonConfig struct {
	Addr              string         `json:"addr"`
	SecretKey         string         `json:"secret_key"`
	Production        *bool          `json:"production"`
	Username          string         `json:"username"`
	Password          string         `json:"password"`
	CatalogBaseURL    string         `json:"catalog_url"`
	ProtectedPrefixes []string       `json:"protected_prefixes"`
	AllowedOrigins    []string       `json:"cors_origins"`
	AssetsDir         string         `json:"assets_dir"`
	LogLevel          string         `json:"log_level"`
	ShutdownTimeout   timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads configuration values from the JSON file named by the -c
// or -config flag. Without the flag nothing is loaded. Fields absent from
// the file keep their current values. An unreadable file or invalid JSON
// panics.
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

	setString(&config.Addr, c.Addr)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.Username, c.Username)
	setString(&config.Password, c.Password)
	setString(&config.CatalogBaseURL, c.CatalogBaseURL)
	setString(&config.AssetsDir, c.AssetsDir)
	setString(&config.LogLevel, c.LogLevel)

	if c.Production != nil {
		config.Production = *c.Production
	}
	if c.ProtectedPrefixes != nil {
		config.ProtectedPrefixes = c.ProtectedPrefixes
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func secondsToDuration(n int) time.Duration {
	return time.Duration(n) * time.Second
}
