package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Caller-facing messages.
const (
	MsgCredentialsRequired = "Username and password are required"
	MsgInvalidUsername     = "Invalid username format"
	MsgPasswordTooShort    = "Password must be at least 6 characters long"
	MsgPasswordTooWeak     = "Password must be at least 8 characters long and include uppercase, lowercase, numbers, and special characters"
	MsgInvalidPhone        = "Invalid phone number format"
	MsgInvalidEmail        = "Invalid email format"
	MsgPasswordTooLong     = "Password must be at most 72 bytes long"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,15}$`)
	phoneRe    = regexp.MustCompile(`^[1-9][0-9]{9}$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

const (
	basicMinLength  = 6
	strongMinLength = 8
	// bcrypt input limit.
	maxPasswordBytes = 72
	emailSuffix      = ".com"
)

// Registration is the raw registration input.
type Registration struct {
	Username string
	Password string
	Email    string
	Phone    string
}

// ValidateRegistration checks presence first and then format, stopping at the
// first failure. Optional email and phone are format-checked only when given.
func ValidateRegistration(p Policy, r Registration) error {
	if err := checkPresence(p, r); err != nil {
		return err
	}
	if err := ValidateUsername(r.Username); err != nil {
		return err
	}
	if err := ValidatePassword(p.Password, r.Password); err != nil {
		return err
	}
	if p.RequirePhone || r.Phone != "" {
		if err := ValidatePhone(r.Phone); err != nil {
			return err
		}
	}
	if p.RequireEmail || r.Email != "" {
		if err := ValidateEmail(r.Email); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCredentials only checks that both login fields are present.
func ValidateCredentials(username, password string) error {
	if username == "" || password == "" {
		return common.NewValidationError(MsgCredentialsRequired)
	}
	return nil
}

func checkPresence(p Policy, r Registration) error {
	var missing []string
	if r.Username == "" {
		missing = append(missing, "username")
	}
	if r.Password == "" {
		missing = append(missing, "password")
	}
	if p.RequireEmail && r.Email == "" {
		missing = append(missing, "email")
	}
	if p.RequirePhone && r.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) == 0 {
		return nil
	}
	return common.NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
}

func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return common.NewValidationError(MsgInvalidUsername)
	}
	return nil
}

// ValidatePassword applies the given policy. Minimum length counts characters,
// the maximum counts bytes.
func ValidatePassword(policy PasswordPolicy, password string) error {
	if len(password) > maxPasswordBytes {
		return common.NewValidationError(MsgPasswordTooLong)
	}
	n := utf8.RuneCountInString(password)
	if policy == PasswordStrong {
		if n < strongMinLength ||
			!upperRe.MatchString(password) ||
			!lowerRe.MatchString(password) ||
			!digitRe.MatchString(password) ||
			!specialRe.MatchString(password) {
			return common.NewValidationError(MsgPasswordTooWeak)
		}
		return nil
	}
	if n < basicMinLength {
		return common.NewValidationError(MsgPasswordTooShort)
	}
	return nil
}

// ValidatePhone accepts exactly ten digits not starting with zero.
func ValidatePhone(phone string) error {
	if !phoneRe.MatchString(phone) {
		return common.NewValidationError(MsgInvalidPhone)
	}
	return nil
}

// ValidateEmail accepts local@domain.tld addresses ending in ".com".
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) || !strings.HasSuffix(email, emailSuffix) {
		return common.NewValidationError(MsgInvalidEmail)
	}
	return nil
}
