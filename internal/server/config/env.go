package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/envx"
	"github.com/dmitrijs2005/pokegate/internal/flagx"
)

// parseEnv overlays environment variables. A .env file in the working
// directory is merged in first; variables already set in the process win.
//
//	ADDR, AUTH_SECRET, APP_ENV, AUTH_USERNAME, AUTH_PASSWORD, CATALOG_URL,
//	PROTECTED_PREFIXES, CORS_ORIGINS, ASSETS_DIR, LOG_LEVEL, SHUTDOWN_TIMEOUT
func parseEnv(config *Config) {
	if err := envx.Load(); err != nil {
		panic(err)
	}

	envx.String(&config.Addr, "ADDR")
	envx.String(&config.SecretKey, "AUTH_SECRET")
	envx.String(&config.Username, "AUTH_USERNAME")
	envx.String(&config.Password, "AUTH_PASSWORD")
	envx.String(&config.CatalogBaseURL, "CATALOG_URL")
	envx.String(&config.AssetsDir, "ASSETS_DIR")
	envx.String(&config.LogLevel, "LOG_LEVEL")
	envx.Duration(&config.ShutdownTimeout, "SHUTDOWN_TIMEOUT", time.Second)

	if v, ok := os.LookupEnv("APP_ENV"); ok {
		config.Production = envx.IsProduction(v)
	}
	if v := flagx.SplitList(os.Getenv("PROTECTED_PREFIXES")); v != nil {
		config.ProtectedPrefixes = v
	}
	if v := flagx.SplitList(os.Getenv("CORS_ORIGINS")); v != nil {
		config.AllowedOrigins = v
	}
}
