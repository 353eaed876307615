package auth

import (
	"errors"

	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the production work factor.
const DefaultBcryptCost = 10

// MaxPasswordBytes is the bcrypt input limit. Longer inputs are truncated by
// the algorithm, so they never verify.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned for passwords bcrypt cannot hash (over 72 bytes).
var ErrPasswordTooLong = oops.Code("AUTH_PASSWORD_TOO_LONG").Errorf("password exceeds 72 bytes")

// PasswordHasher provides password hashing and verification.
type PasswordHasher interface {
	// Hash produces a salted hash of the password.
	Hash(password string) (string, error)

	// Verify checks if the password matches the hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or error on invalid hash.
	Verify(password, hash string) (bool, error)

	// VerifyDummy spends the same time as Verify against a hash that never
	// matches. Used when the account does not exist.
	VerifyDummy(password string)
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost      int
	dummyHash []byte
}

// NewBcryptHasher creates a BcryptHasher with the given cost. The dummy hash is
// computed once here at the same cost so VerifyDummy takes as long as Verify.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, oops.Code("AUTH_INVALID_COST").Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("dummy-password-never-matches"), cost)
	if err != nil {
		return nil, oops.Code("AUTH_HASH_FAILED").Wrap(err)
	}

	return &BcryptHasher{cost: cost, dummyHash: dummy}, nil
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", oops.Code("AUTH_HASH_FAILED").Wrap(err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if len(password) > MaxPasswordBytes && (err == nil || errors.Is(err, bcrypt.ErrMismatchedHashAndPassword)) {
		return false, nil
	}
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, oops.Code("AUTH_INVALID_HASH").Wrap(err)
	}
}

func (h *BcryptHasher) VerifyDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
}
