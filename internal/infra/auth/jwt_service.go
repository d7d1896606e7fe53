// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"herbarium/config"
	"herbarium/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Tokens carry a fixed lifetime; there is no refresh flow.
type jwtService struct {
	secret string        // Secret key for signing bearer tokens.
	ttl    time.Duration // Fixed time-to-live for issued tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret: cfg.SecretKey.Access,
		ttl:    cfg.Auth.TokenTTL,
	}, nil
}

// GenerateToken creates a new bearer token for the given identity.
func (s *jwtService) GenerateToken(identityID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": identityID,             // Subject (who the token is for)
		"iat": now.Unix(),             // Issued At
		"exp": now.Add(s.ttl).Unix(),  // Expiration Time
		"typ": "bearer",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateToken checks the validity of a token string, including expiry.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	identityID, ok := mapClaims["sub"].(string)
	if !ok || identityID == "" {
		return nil, jwt.ErrTokenInvalidSubject
	}

	return &service.Claims{IdentityID: identityID}, nil
}
