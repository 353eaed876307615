package config

import (
	"github.com/caarlos0/env/v11"
)

// parseEnv overlays Config with the environment variables named in its env
// tags. Unset variables leave the current value in place. Malformed values
// (e.g. BCRYPT_COST=abc) panic like the other sources.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
