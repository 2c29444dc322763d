// Package config loads runtime configuration for the Lost & Found client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, after exporting a .env file from the working
//     directory with godotenv: LOSTFOUND_API_URL (or VITE_API_URL),
//     LOSTFOUND_DB, LOSTFOUND_LOG_LEVEL, LOSTFOUND_LOG_FORMAT,
//     LOSTFOUND_WEB_ADDR, LOSTFOUND_STALE_TIME, LOSTFOUND_PREVIEW_DIR.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:3000",
//	  "database_path": "lostfound.db",
//	  "stale_time": "5m",
//	  "request_timeout": "15s",
//	  "web_listen_addr": "127.0.0.1:5173",
//	  "log_level": "info"
//	}
package config
