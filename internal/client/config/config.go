package config

import "time"

// Config holds runtime settings for the mbticli client.
//
// Fields:
//   - ServerURL: base URL of the backend HTTP API.
//   - RequestTimeout: per-request transport timeout.
//   - StateDBPath: path of the local SQLite state database.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	StateDBPath    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.RequestTimeout = 15 * time.Second
	c.StateDBPath = "mbticli.db"
}

// LoadConfig constructs a Config by applying defaults, then overlaying
// environment variables, a JSON file (if given) and command-line flags.
// Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
