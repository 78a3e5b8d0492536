// Package config loads runtime configuration for the mddctl CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. The MDD_SERVER_URL and MDD_TIMEOUT environment variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the MDD API
//	-t string   request timeout, e.g. "10s"
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:8080",
//	  "timeout": "10s"
//	}
package config
