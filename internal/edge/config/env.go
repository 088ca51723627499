package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/envx"
	"github.com/dmitrijs2005/pokegate/internal/flagx"
)

// parseEnv overlays environment variables after merging an optional .env
// file:
//
//	ADDR, AUTHORITY_URL, AUTHORITY_TIMEOUT (seconds or "3s"), CATALOG_URL,
//	PROTECTED_PREFIXES, CORS_ORIGINS, ASSETS_DIR, LOG_LEVEL, SHUTDOWN_TIMEOUT
func parseEnv(config *Config) {
	if err := envx.Load(); err != nil {
		panic(err)
	}

	envx.String(&config.Addr, "ADDR")
	envx.String(&config.AuthorityURL, "AUTHORITY_URL")
	envx.Duration(&config.AuthorityTimeout, "AUTHORITY_TIMEOUT", time.Second)
	envx.String(&config.CatalogBaseURL, "CATALOG_URL")
	envx.String(&config.AssetsDir, "ASSETS_DIR")
	envx.String(&config.LogLevel, "LOG_LEVEL")
	envx.Duration(&config.ShutdownTimeout, "SHUTDOWN_TIMEOUT", time.Second)

	if v := flagx.SplitList(os.Getenv("PROTECTED_PREFIXES")); v != nil {
		config.ProtectedPrefixes = v
	}
	if v := flagx.SplitList(os.Getenv("CORS_ORIGINS")); v != nil {
		config.AllowedOrigins = v
	}
}
