package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/flagx"
)

// parseFlags populates edge Config fields from command-line flags.
//
//	-a string          HTTP bind address (e.g. ":8080")
//	-authority string  authority base URL
//	-t int             authority call timeout, seconds
//	-catalog string    catalog base URL
//	-protected string  comma-separated protected path prefixes
//	-cors string       comma-separated allowed CORS origins
//	-assets string     static assets directory
//	-l string          log level
//	-shutdown int      shutdown timeout, seconds
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-authority", "-t", "-catalog", "-protected", "-cors", "-assets", "-l", "-shutdown"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.AuthorityURL, "authority", config.AuthorityURL, "authority base URL")
	authorityTimeout := fs.Int("t", int(config.AuthorityTimeout.Seconds()), "authority timeout (in seconds)")
	fs.StringVar(&config.CatalogBaseURL, "catalog", config.CatalogBaseURL, "catalog base URL")
	protected := fs.String("protected", strings.Join(config.ProtectedPrefixes, ","), "protected path prefixes")
	origins := fs.String("cors", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins")
	fs.StringVar(&config.AssetsDir, "assets", config.AssetsDir, "static assets directory")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	shutdown := fs.Int("shutdown", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Keep sub-second values that came from env or JSON unless -t was given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AuthorityTimeout = time.Duration(*authorityTimeout) * time.Second
		}
		if f.Name == "shutdown" {
			config.ShutdownTimeout = time.Duration(*shutdown) * time.Second
		}
	})
	config.ProtectedPrefixes = flagx.SplitList(*protected)
	config.AllowedOrigins = flagx.SplitList(*origins)
}
