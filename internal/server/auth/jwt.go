package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Claims carries the standard registered claims plus the username.
// Subject is set to the username as well.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(username string) (string, error)
	// Verify returns the username carried by a valid token.
	Verify(token string) (string, error)
}

// JWTIssuer is an HS256 TokenIssuer keyed by a shared secret.
type JWTIssuer struct {
	secretKey        []byte
	validityDuration time.Duration
}

func NewJWTIssuer(secretKey []byte, validityDuration time.Duration) *JWTIssuer {
	return &JWTIssuer{secretKey: secretKey, validityDuration: validityDuration}
}

func (i *JWTIssuer) Issue(username string) (string, error) {
	return GenerateToken(username, i.secretKey, i.validityDuration)
}

func (i *JWTIssuer) Verify(token string) (string, error) {
	return GetUsernameFromToken(token, i.secretKey)
}

func GenerateToken(username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetUsernameFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Username == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Username, nil
}
