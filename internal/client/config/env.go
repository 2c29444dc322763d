package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvAPIURL     = "LOSTFOUND_API_URL"
	EnvDatabase   = "LOSTFOUND_DB"
	EnvLogLevel   = "LOSTFOUND_LOG_LEVEL"
	EnvLogFormat  = "LOSTFOUND_LOG_FORMAT"
	EnvWebAddr    = "LOSTFOUND_WEB_ADDR"
	EnvStaleTime  = "LOSTFOUND_STALE_TIME"
	EnvPreviewDir = "LOSTFOUND_PREVIEW_DIR"

	// envViteAPIURL is honoured so an existing frontend .env keeps working.
	envViteAPIURL = "VITE_API_URL"
)

// loadDotEnv exports the variables of path that are not set yet. A missing
// file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				*dst = v
				return
			}
		}
	}

	str(&cfg.APIBaseURL, EnvAPIURL, envViteAPIURL)
	str(&cfg.DatabasePath, EnvDatabase)
	str(&cfg.LogLevel, EnvLogLevel)
	str(&cfg.LogFormat, EnvLogFormat)
	str(&cfg.WebListenAddr, EnvWebAddr)
	str(&cfg.PreviewDir, EnvPreviewDir)

	if v, ok := lookup(EnvStaleTime); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStaleTime, err)
		}
		cfg.StaleTime = d
	}
	return nil
}
