// Package envx reads configuration overrides from the process environment.
//
// Load merges an optional .env file into the environment first (existing
// variables win, as with godotenv), so deployments can keep the signing
// secret out of command lines and JSON files.
package envx

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the given dotenv files into the process environment. Missing
// files are not an error; with no arguments ".env" in the working directory
// is tried.
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// String sets *dst to the value of key when the variable is present and
// non-empty.
func String(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

// Bool sets *dst when key holds a value strconv.ParseBool accepts.
func Bool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			*dst = b
		}
	}
}

// Duration accepts either a Go duration string ("3s") or a bare integer,
// which is interpreted in the given unit.
func Duration(dst *time.Duration, key string, unit time.Duration) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(n) * unit
	}
}

// IsProduction reports whether an environment name denotes production.
func IsProduction(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		return true
	default:
		return false
	}
}
