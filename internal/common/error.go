package common

import "errors"

// RequestError is an error whose message is safe to show to the caller.
// Kind is one of the service-level sentinels and is what errors.Is matches.
type RequestError struct {
	Kind    error
	Message string
}

func (e *RequestError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return ErrorInternal.Error()
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

// NewValidationError reports malformed or missing input.
func NewValidationError(msg string) error {
	return &RequestError{Kind: ErrorValidation, Message: msg}
}

// NewConflictError reports a duplicate identifier, email or phone.
func NewConflictError(msg string) error {
	return &RequestError{Kind: ErrorConflict, Message: msg}
}

// NewInvalidCredentialsError reports a failed login. The message must not
// reveal which half of the credentials was wrong.
func NewInvalidCredentialsError(msg string) error {
	return &RequestError{Kind: ErrorUnauthorized, Message: msg}
}

// PublicMessage returns the caller-facing message of err, or fallback when err
// carries none.
func PublicMessage(err error, fallback string) string {
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
