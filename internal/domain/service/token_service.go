package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims carried by the bearer tokens.
type Claims struct {
	IdentityID string
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// Tokens have a fixed lifetime and are not refreshable; expiry is enforced
// at validation time.
type TokenService interface {
	// GenerateToken creates a new bearer token for the given identity.
	GenerateToken(identityID string) (string, error)

	// ValidateToken checks the validity of a token string, including expiry,
	// and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)
}
