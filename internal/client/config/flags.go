package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/envx"
	"github.com/dmitrijs2005/pokegate/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the server
//	-t int      request timeout in seconds
//
// Only -a and -t are looked at, via flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the server")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}

func parseEnv(cfg *Config) {
	envx.String(&cfg.ServerURL, "POKEGATE_URL")
	envx.Duration(&cfg.RequestTimeout, "POKEGATE_TIMEOUT", time.Second)
}
