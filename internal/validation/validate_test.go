package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

func valid() Registration {
	return Registration{Username: "alice_01", Password: "secret1", Email: "a@b.com", Phone: "9123456780"}
}

func TestValidateRegistration(t *testing.T) {
	extended := ExtendedPolicy()
	minimal := MinimalPolicy()

	tests := []struct {
		name    string
		policy  Policy
		mutate  func(r *Registration)
		wantMsg string
	}{
		{name: "valid extended", policy: extended},
		{name: "valid minimal without contact", policy: minimal, mutate: func(r *Registration) { r.Email, r.Phone = "", "" }},
		{
			name: "missing everything lists all", policy: extended,
			mutate:  func(r *Registration) { *r = Registration{} },
			wantMsg: "Missing required fields: username, password, email, phone",
		},
		{
			name: "missing contact only", policy: extended,
			mutate:  func(r *Registration) { r.Email, r.Phone = "", "" },
			wantMsg: "Missing required fields: email, phone",
		},
		{
			name: "minimal only asks for credentials", policy: minimal,
			mutate:  func(r *Registration) { r.Password = "" },
			wantMsg: "Missing required fields: password",
		},
		{name: "short username", policy: extended, mutate: func(r *Registration) { r.Username = "ab" }, wantMsg: MsgInvalidUsername},
		{name: "long username", policy: extended, mutate: func(r *Registration) { r.Username = "abcdefghijklmnop" }, wantMsg: MsgInvalidUsername},
		{name: "username with dash", policy: extended, mutate: func(r *Registration) { r.Username = "alice-01" }, wantMsg: MsgInvalidUsername},
		{name: "short password", policy: extended, mutate: func(r *Registration) { r.Password = "ab1" }, wantMsg: MsgPasswordTooShort},
		{name: "leading zero phone", policy: extended, mutate: func(r *Registration) { r.Phone = "0123456789" }, wantMsg: MsgInvalidPhone},
		{name: "nine digit phone", policy: extended, mutate: func(r *Registration) { r.Phone = "912345678" }, wantMsg: MsgInvalidPhone},
		{name: "wrong email suffix", policy: extended, mutate: func(r *Registration) { r.Email = "a@b.org" }, wantMsg: MsgInvalidEmail},
		{name: "email without at", policy: extended, mutate: func(r *Registration) { r.Email = "ab.com" }, wantMsg: MsgInvalidEmail},
		{
			name: "optional phone still checked when given", policy: minimal,
			mutate:  func(r *Registration) { r.Phone = "0123456789" },
			wantMsg: MsgInvalidPhone,
		},
		{
			name: "username checked before password", policy: extended,
			mutate:  func(r *Registration) { r.Username, r.Password = "x", "y" },
			wantMsg: MsgInvalidUsername,
		},
		{
			name: "phone checked before email", policy: extended,
			mutate:  func(r *Registration) { r.Phone, r.Email = "0", "bad" },
			wantMsg: MsgInvalidPhone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			if tt.mutate != nil {
				tt.mutate(&r)
			}
			err := ValidateRegistration(tt.policy, r)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, common.ErrorValidation)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidatePassword_Strong(t *testing.T) {
	tests := map[string]bool{
		"Secret1!":   true,
		"secret1!":   false,
		"SECRET1!":   false,
		"Secretss!":  false,
		"Secret11":   false,
		"Se1!":       false,
		"Pa$$w0rd{}": true,
	}
	for pw, ok := range tests {
		err := ValidatePassword(PasswordStrong, pw)
		if ok {
			assert.NoError(t, err, pw)
		} else {
			assert.EqualError(t, err, MsgPasswordTooWeak, pw)
		}
	}
}

func TestValidatePassword_TooLong(t *testing.T) {
	assert.NoError(t, ValidatePassword(PasswordBasic, strings.Repeat("a", 72)))
	assert.EqualError(t, ValidatePassword(PasswordBasic, strings.Repeat("a", 73)), MsgPasswordTooLong)
	// 25 three-byte runes: long enough in characters, too long in bytes.
	assert.EqualError(t, ValidatePassword(PasswordBasic, strings.Repeat("€", 25)), MsgPasswordTooLong)
}

func TestValidateCredentials(t *testing.T) {
	assert.NoError(t, ValidateCredentials("alice", "pw"))
	assert.EqualError(t, ValidateCredentials("", "pw"), MsgCredentialsRequired)
	assert.EqualError(t, ValidateCredentials("alice", ""), MsgCredentialsRequired)
}

func TestParsePasswordPolicy(t *testing.T) {
	p, err := ParsePasswordPolicy("strong")
	require.NoError(t, err)
	assert.Equal(t, PasswordStrong, p)

	_, err = ParsePasswordPolicy("weak")
	assert.Error(t, err)
}

func TestValidUsernamesAccepted(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		username := rapid.StringMatching(`[A-Za-z0-9_]{3,15}`).Draw(rt, "username")
		if err := ValidateUsername(username); err != nil {
			rt.Fatalf("ValidateUsername(%q): %v", username, err)
		}
	})
}

func TestValidPhonesAccepted(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		phone := rapid.StringMatching(`[1-9][0-9]{9}`).Draw(rt, "phone")
		if err := ValidatePhone(phone); err != nil {
			rt.Fatalf("ValidatePhone(%q): %v", phone, err)
		}
		if err := ValidatePhone("0" + phone[1:]); err == nil {
			rt.Fatalf("leading zero accepted for %q", phone)
		}
	})
}
