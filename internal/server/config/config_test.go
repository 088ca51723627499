package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"ADDR", "AUTH_SECRET", "APP_ENV", "AUTH_USERNAME", "AUTH_PASSWORD", "CATALOG_URL",
	"PROTECTED_PREFIXES", "CORS_ORIGINS", "ASSETS_DIR", "LOG_LEVEL", "SHUTDOWN_TIMEOUT",
}

// clearEnv blanks every variable parseEnv reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func defaults() *Config {
	return &Config{
		Addr:              ":8081",
		Username:          "admin",
		Password:          "admin",
		CatalogBaseURL:    "https://pokeapi.co/api/v2",
		ProtectedPrefixes: []string{"/api/pokemon"},
		AssetsDir:         "web/assets",
		LogLevel:          "info",
		ShutdownTimeout:   10 * time.Second,
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Empty(t, cmp.Diff(defaults(), &c))
	assert.Empty(t, c.SecretKey, "there must be no default signing secret")
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	clearEnv(t)
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd"}

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Empty(t, cmp.Diff(defaults(), c))
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"addr":       ":7000",
		"secret_key": "from-json",
		"username":   "ash",
	})
	t.Setenv("AUTH_SECRET", "from-env")
	t.Setenv("ADDR", ":7100")
	os.Args = []string{"cmd", "-c", path, "-a", ":7200"}

	c := LoadConfig()

	assert.Equal(t, ":7200", c.Addr, "flags win over env and json")
	assert.Equal(t, "from-env", c.SecretKey, "env wins over json")
	assert.Equal(t, "ash", c.Username, "json wins over defaults")
}

func TestValidate(t *testing.T) {
	c := defaults()
	err := c.Validate()
	require.ErrorIs(t, err, common.ErrConfiguration)
	assert.Contains(t, err.Error(), "secret")

	c.SecretKey = "   "
	assert.ErrorIs(t, c.Validate(), common.ErrConfiguration)

	c.SecretKey = "s3cr3t"
	assert.NoError(t, c.Validate())

	c.Password = ""
	assert.ErrorIs(t, c.Validate(), common.ErrConfiguration)

	c = defaults()
	c.SecretKey = "s3cr3t"
	c.ShutdownTimeout = 0
	assert.ErrorIs(t, c.Validate(), common.ErrConfiguration)
}
