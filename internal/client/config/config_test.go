package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "mbticli.db", cfg.StateDBPath)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("MBTICLI_SERVER_URL", "http://api.example.com")
	t.Setenv("MBTICLI_TIMEOUT", "30")
	t.Setenv("MBTICLI_STATE_DB", "/tmp/state.db")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "http://api.example.com", cfg.ServerURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/state.db", cfg.StateDBPath)
}

func TestParseEnv_IgnoresGarbageTimeout(t *testing.T) {
	t.Setenv("MBTICLI_TIMEOUT", "soon")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestJSONConfig_Unmarshal(t *testing.T) {
	var jc JSONConfig
	require.NoError(t, json.Unmarshal([]byte(`{
		"server_url": "http://api:9090",
		"request_timeout": "20s",
		"state_db_path": "alt.db"
	}`), &jc))

	assert.Equal(t, "http://api:9090", jc.ServerURL)
	assert.Equal(t, 20*time.Second, jc.RequestTimeout.Duration)
	assert.Equal(t, "alt.db", jc.StateDBPath)
}
