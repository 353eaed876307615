package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("GOPHAUTH_SERVER_URL", "https://auth.example.com")
	t.Setenv("GOPHAUTH_STATE_PATH", "/tmp/state.db")
	t.Setenv("GOPHAUTH_PASSWORD_POLICY", "strong")
	t.Setenv("GOPHAUTH_REQUIRE_EMAIL", "false")
	t.Setenv("GOPHAUTH_REQUEST_TIMEOUT", "3s")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseEnv(cfg) })

	want := &Config{
		ServerURL:      "https://auth.example.com",
		StatePath:      "/tmp/state.db",
		PasswordPolicy: "strong",
		RequireEmail:   false,
		RequirePhone:   true,
		RequestTimeout: 3 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseEnv_Malformed(t *testing.T) {
	t.Setenv("GOPHAUTH_REQUEST_TIMEOUT", "soon")

	cfg := &Config{}
	require.Panics(t, func() { parseEnv(cfg) })
}
