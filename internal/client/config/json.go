package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/lostfound/internal/flagx"
	"github.com/dmitrijs2005/lostfound/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so they may be strings like "5m" or integer nanoseconds.
// Absent members leave the current value alone.
type JsonConfig struct {
	APIBaseURL          string          `json:"api_base_url"`
	DatabasePath        string          `json:"database_path"`
	PreviewDir          string          `json:"preview_dir"`
	StaleTime           *timex.Duration `json:"stale_time"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	WebListenAddr       string          `json:"web_listen_addr"`
	LogLevel            string          `json:"log_level"`
	LogFormat           string          `json:"log_format"`
	PlaceholderImageURL string          `json:"placeholder_image_url"`
}

// parseJSON overlays cfg with the file named by -c/-config in args, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.APIBaseURL, jc.APIBaseURL)
	set(&cfg.DatabasePath, jc.DatabasePath)
	set(&cfg.PreviewDir, jc.PreviewDir)
	set(&cfg.WebListenAddr, jc.WebListenAddr)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogFormat, jc.LogFormat)
	set(&cfg.PlaceholderImageURL, jc.PlaceholderImageURL)

	if jc.StaleTime != nil {
		cfg.StaleTime = jc.StaleTime.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}
