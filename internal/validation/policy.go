// Package validation holds the input rules shared by the server (authoritative)
// and the CLI client (advisory). Every check is pure; nothing here touches the
// store.
package validation

import "fmt"

// PasswordPolicy names a password strength rule set.
type PasswordPolicy string

const (
	// PasswordBasic requires at least 6 characters.
	PasswordBasic PasswordPolicy = "basic"
	// PasswordStrong requires at least 8 characters mixing upper case, lower
	// case, digits and symbols.
	PasswordStrong PasswordPolicy = "strong"
)

// ParsePasswordPolicy accepts "basic" or "strong".
func ParsePasswordPolicy(s string) (PasswordPolicy, error) {
	switch p := PasswordPolicy(s); p {
	case PasswordBasic, PasswordStrong:
		return p, nil
	default:
		return "", fmt.Errorf("unknown password policy %q", s)
	}
}

// Policy selects which registration fields are mandatory, how passwords are
// judged and whether a successful login yields a token.
type Policy struct {
	RequireEmail bool
	RequirePhone bool
	IssueToken   bool
	Password     PasswordPolicy
}

// MinimalPolicy mirrors the bare username/password variant.
func MinimalPolicy() Policy {
	return Policy{Password: PasswordBasic}
}

// ExtendedPolicy requires email and phone and issues tokens.
func ExtendedPolicy() Policy {
	return Policy{RequireEmail: true, RequirePhone: true, IssueToken: true, Password: PasswordBasic}
}
