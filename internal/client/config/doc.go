// Package config loads runtime configuration for the mbticli client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with an optional .env file (see parseEnv).
//  3. Optional JSON file selected via -c or -config (see parseJSON).
//  4. Command-line flags (see parseFlags), which override everything.
//
// Supported flags
//
//	-a string   base URL of the backend server
//	-t int      request timeout (seconds)
//	-d string   path of the local state database
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so the timeout can be either a string
// like "15s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:8080",
//	  "request_timeout": "15s",
//	  "state_db_path": "mbticli.db"
//	}
package config
