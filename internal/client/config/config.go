package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/lostfound/internal/common"
)

// Config holds runtime settings shared by the CLI and the web frontend.
//
// Units: StaleTime and RequestTimeout are time.Duration values.
type Config struct {
	APIBaseURL          string
	DatabasePath        string
	PreviewDir          string
	StaleTime           time.Duration
	RequestTimeout      time.Duration
	WebListenAddr       string
	LogLevel            string
	LogFormat           string
	PlaceholderImageURL string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.DatabasePath = "lostfound.db"
	c.PreviewDir = os.TempDir()
	c.StaleTime = 5 * time.Minute
	c.RequestTimeout = 15 * time.Second
	c.WebListenAddr = "127.0.0.1:5173"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.PlaceholderImageURL = common.PlaceholderImageURL
}

// LoadConfig builds a Config from defaults, then the environment (and a
// .env file in the working directory), then the JSON file named by -c or
// -config, then command-line flags. Later sources win.
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, lookup); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
