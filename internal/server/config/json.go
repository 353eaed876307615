package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1s" and integer nanoseconds.
//
// Fields are pointers so that keys absent from the file leave the current
// value alone.
type JsonConfig struct {
	EndpointAddrHTTP      *string         `json:"endpoint_addr_http"`
	DatabaseDSN           *string         `json:"database_dsn"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	BcryptCost            *int            `json:"bcrypt_cost"`
	RequireEmail          *bool           `json:"require_email"`
	RequirePhone          *bool           `json:"require_phone"`
	IssueToken            *bool           `json:"issue_token"`
	PasswordPolicy        *string         `json:"password_policy"`
	LogLevel              *string         `json:"log_level"`
	TraceEndpoint         *string         `json:"trace_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags. If neither
// is set, no JSON file is loaded. If the file cannot be read or contains
// invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFilePath(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	setIf(&config.BcryptCost, c.BcryptCost)
	setIf(&config.RequireEmail, c.RequireEmail)
	setIf(&config.RequirePhone, c.RequirePhone)
	setIf(&config.IssueToken, c.IssueToken)
	setIf(&config.PasswordPolicy, c.PasswordPolicy)
	setIf(&config.LogLevel, c.LogLevel)
	setIf(&config.TraceEndpoint, c.TraceEndpoint)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
