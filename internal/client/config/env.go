package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays Config with GOPHAUTH_* variables. Malformed values panic.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
