package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/frostedstar/mbticli/internal/flagx"
	"github.com/frostedstar/mbticli/internal/timex"
)

// JSONConfig is a DTO used only for unmarshalling. timex.Duration lets JSON
// express the timeout either as "15s" or as integer nanoseconds.
type JSONConfig struct {
	ServerURL      string         `json:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StateDBPath    string         `json:"state_db_path"`
}

// parseJSON overlays Config with values from the JSON file named by the
// -c/-config flags. No flag, no JSON. Read or unmarshal errors panic; the
// file was explicitly requested, so a broken one should not be ignored.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JSONConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.StateDBPath != "" {
		cfg.StateDBPath = jc.StateDBPath
	}
}
