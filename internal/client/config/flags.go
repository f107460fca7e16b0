package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/flagx"
)

// parseFlags overlays cfg with -a, -t and -l from args. Other flags are
// filtered out first so they do not make parsing fail.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	ttl := fs.Int("t", int(cfg.SuccessMessageTTL.Seconds()), "success message lifetime (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, "a", "t", "l")); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.SuccessMessageTTL = time.Duration(*ttl) * time.Second
		}
	})
	return nil
}
