package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as a
// string like "5s" or as integer nanoseconds. Absent keys keep the current
// value.
type JsonConfig struct {
	ServerURL      *string         `json:"server_url"`
	StatePath      *string         `json:"state_path"`
	PasswordPolicy *string         `json:"password_policy"`
	RequireEmail   *bool           `json:"require_email"`
	RequirePhone   *bool           `json:"require_phone"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file named by -c
// or --config. Without either flag nothing is loaded. Read or unmarshal
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIf(&cfg.ServerURL, jc.ServerURL)
	setIf(&cfg.StatePath, jc.StatePath)
	setIf(&cfg.PasswordPolicy, jc.PasswordPolicy)
	setIf(&cfg.RequireEmail, jc.RequireEmail)
	setIf(&cfg.RequirePhone, jc.RequirePhone)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
