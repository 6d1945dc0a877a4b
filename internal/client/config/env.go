package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays cfg with values from environment variables. Typically
// these come from a .env file loaded in main.
//
//	SALONBOOK_SERVER      base URL of the booking API
//	SALONBOOK_TIMEOUT     request timeout in seconds
//	SALONBOOK_SESSION_DB  session cache database path
func parseEnv(cfg *Config) {
	if v := os.Getenv("SALONBOOK_SERVER"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("SALONBOOK_TIMEOUT"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeout = time.Duration(seconds) * time.Second
		}
	}
	if v := os.Getenv("SALONBOOK_SESSION_DB"); v != "" {
		cfg.SessionDBPath = v
	}
}
