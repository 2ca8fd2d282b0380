// Package config loads runtime configuration for the bookshelf CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the bookshelf server
//	-t int      request timeout (seconds)
//
// JSON schema:
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "request_timeout": "10s"
//	}
package config
