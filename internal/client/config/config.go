package config

import "time"

// Config holds runtime settings for the salonbook CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the booking API.
//   - RequestTimeout: per-request HTTP timeout.
//   - SessionDBPath: path of the local session cache database.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	SessionDBPath  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.RequestTimeout = 10 * time.Second
	c.SessionDBPath = "salonbook.db"
}

// Load constructs a Config, applies defaults, then overlays values from
// JSON (if a config file was given), environment variables, and
// command-line flags. Later sources take precedence over earlier ones.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
