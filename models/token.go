package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token issued by the identity provider.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
//
// ActorID is the parsed "sub" claim: the identity every compliance operation
// is keyed and audited against.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// ActorID is the owner identifier extracted from the "sub" claim.
	ActorID string `json:"-"`
}

// GetActorID extracts the actor identifier from the token's "sub" claim.
// Returns an error if the subject claim is missing or empty.
func (t *Token) GetActorID() (string, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting actor from token: %w", err)
	}
	if subject == "" {
		return "", fmt.Errorf("error extracting actor from token: empty subject")
	}

	return subject, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
