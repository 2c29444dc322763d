package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/lostfound/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-s", "-l", "-t", "-log-level", "-log-format"}

// parseFlags overlays cfg with the flags it knows about. Other arguments
// are filtered out with flagx.FilterArgs so they cannot break parsing.
//
//	-a string       backend base URL
//	-d string       SQLite database path
//	-s duration     cache freshness window
//	-l string       listen address of the web frontend
//	-t duration     per-request timeout
//	-log-level      debug, info, warn or error
//	-log-format     text or json
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("lostfound", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "SQLite database path")
	fs.DurationVar(&cfg.StaleTime, "s", cfg.StaleTime, "cache freshness window")
	fs.StringVar(&cfg.WebListenAddr, "l", cfg.WebListenAddr, "web frontend listen address")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format")

	return fs.Parse(flagx.FilterArgs(args, knownFlags))
}
