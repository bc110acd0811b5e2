package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables, loading a .env file
// from the working directory first when present. Missing file is fine.
//
// Variables:
//
//	MBTICLI_SERVER_URL   base URL of the backend
//	MBTICLI_TIMEOUT      request timeout in seconds
//	MBTICLI_STATE_DB     path of the local state database
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("MBTICLI_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("MBTICLI_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("MBTICLI_STATE_DB"); v != "" {
		cfg.StateDBPath = v
	}
}
