package jwt

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func signedToken(t *testing.T, secret string, claims gojwt.MapClaims) string {
	t.Helper()
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return signed
}

func TestVerify(t *testing.T) {
	v := NewVerifier(testSecret)

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{
			name:  "valid token",
			token: signedToken(t, testSecret, gojwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}),
		},
		{
			name:    "wrong secret",
			token:   signedToken(t, "another-secret-another-secret-ab", gojwt.MapClaims{}),
			wantErr: true,
		},
		{
			name:    "expired",
			token:   signedToken(t, testSecret, gojwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()}),
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   "not.a.token",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Verify(tt.token)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken chain", err)
			}
		})
	}
}

func TestVerify_RejectsUnexpectedSigningMethod(t *testing.T) {
	v := NewVerifier(testSecret)

	// alg=none style token: header {"alg":"none","typ":"JWT"}.
	unsigned := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{})
	token, err := unsigned.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if err := v.Verify(token); err == nil {
		t.Errorf("Verify() accepted an unsigned token")
	}
}
