// Package config loads runtime configuration for the gophauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or --config.
//  3. GOPHAUTH_* environment variables.
//  4. Persistent flags of the cobra root command, bound in package cli.
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "state_path": "gophauth.db",
//	  "password_policy": "basic",
//	  "require_email": true,
//	  "require_phone": true,
//	  "request_timeout": "10s"
//	}
package config
