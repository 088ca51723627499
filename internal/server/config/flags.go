package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/pokegate/internal/flagx"
)

// parseFlags populates selected authority Config fields from command-line
// flags.
//
// Supported flags:
//
//	-a string          HTTP bind address (e.g. ":8081")
//	-s string          token signing secret
//	-prod              production cookies (Secure, SameSite=Strict)
//	-u string          login username
//	-p string          login password
//	-catalog string    catalog base URL
//	-protected string  comma-separated protected path prefixes
//	-cors string       comma-separated allowed CORS origins
//	-assets string     static assets directory
//	-l string          log level
//	-shutdown int      shutdown timeout, seconds
//
// Only these flags are looked at; os.Args is filtered with flagx.FilterArgs
// first so the JSON config flags do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-prod", "-u", "-p", "-catalog", "-protected", "-cors", "-assets", "-l", "-shutdown"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.BoolVar(&config.Production, "prod", config.Production, "production mode")
	fs.StringVar(&config.Username, "u", config.Username, "login username")
	fs.StringVar(&config.Password, "p", config.Password, "login password")
	fs.StringVar(&config.CatalogBaseURL, "catalog", config.CatalogBaseURL, "catalog base URL")
	protected := fs.String("protected", strings.Join(config.ProtectedPrefixes, ","), "protected path prefixes")
	origins := fs.String("cors", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins")
	fs.StringVar(&config.AssetsDir, "assets", config.AssetsDir, "static assets directory")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	shutdown := fs.Int("shutdown", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "shutdown" {
			config.ShutdownTimeout = secondsToDuration(*shutdown)
		}
	})
	config.ProtectedPrefixes = flagx.SplitList(*protected)
	config.AllowedOrigins = flagx.SplitList(*origins)
}
