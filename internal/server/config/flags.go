package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   database DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-b int      bcrypt cost
//	-email      require email on registration
//	-phone      require phone on registration
//	-token      issue a token on login
//	-policy     password policy (basic|strong)
//	-l string   log level
//	-trace      OTLP/HTTP trace endpoint URL
//
// Boolean switches accept the -name=false form to turn a default off.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-d", "-s", "-t", "-b", "-policy", "-l", "-trace"},
		"-email", "-phone", "-token")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.BoolVar(&config.RequireEmail, "email", config.RequireEmail, "require email on registration")
	fs.BoolVar(&config.RequirePhone, "phone", config.RequirePhone, "require phone on registration")
	fs.BoolVar(&config.IssueToken, "token", config.IssueToken, "issue a token on successful login")
	fs.StringVar(&config.PasswordPolicy, "policy", config.PasswordPolicy, "password policy (basic|strong)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.TraceEndpoint, "trace", config.TraceEndpoint, "OTLP/HTTP trace endpoint URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// keep sub-minute values from JSON or env unless -t was given
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Minute
		}
	})
}
