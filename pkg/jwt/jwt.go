package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt"
)

var (
	// ErrInvalidToken is returned when the token fails signature or claim
	// validation.
	ErrInvalidToken = errors.New("invalid service token")
)

// Verifier validates HS256 service tokens presented to the internal API.
type Verifier interface {
	Verify(tokenString string) error
}

type implVerifier struct {
	secretKey string
}

var _ Verifier = implVerifier{}

// NewVerifier creates a Verifier with the given shared secret.
func NewVerifier(secretKey string) Verifier {
	return implVerifier{secretKey: secretKey}
}

// Verify parses and validates the token. Only the signature and standard
// time claims are checked; authorization policy lives upstream.
func (v implVerifier) Verify(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(v.secretKey), nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
