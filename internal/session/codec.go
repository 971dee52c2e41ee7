// Package session serializes the authenticated identity into a signed,
// tamper-evident cookie token. Tokens are signed, not encrypted: the
// claims are readable by the client but cannot be forged or altered.
package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity carried by a session token. No expiry is
// embedded; token lifetime is bounded only by the cookie max-age set by
// the caller.
type Claims struct {
	UserID      int64  `json:"user_id"`
	HouseholdID int64  `json:"household_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a symmetric secret.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode serializes the claims into a signed token string.
func (c *Codec) Encode(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies the token signature and returns the claims, or nil if
// the token is absent, malformed, or fails verification. A bad token is
// a normal outcome meaning "treat as unauthenticated", never an error.
func (c *Codec) Decode(token string) *Claims {
	if token == "" {
		return nil
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
