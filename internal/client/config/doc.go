// Package config loads runtime configuration for the salonbook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via the -c or -config flags.
//  3. Environment variables (usually from a .env file loaded in main).
//  4. Command-line flags, which override everything earlier.
//
// Supported flags
//
//	-a string   base URL of the booking API
//	-t int      request timeout (seconds)
//	-s string   session cache database path
//
// Environment variables
//
//	SALONBOOK_SERVER, SALONBOOK_TIMEOUT, SALONBOOK_SESSION_DB
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so the value can be
// either a string like "10s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://localhost:8000",
//	  "request_timeout": "10s",
//	  "session_db_path": "salonbook.db"
//	}
package config
