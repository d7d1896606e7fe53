package middleware

import (
	"strings"

	"herbarium/internal/domain/entity"
	domainerrors "herbarium/internal/domain/errors"
	"herbarium/internal/domain/repository"
	"herbarium/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// ContextKeyIdentityID is the echo.Context key holding the authenticated
// identity's canonical identifier.
const ContextKeyIdentityID = "identityID"

// AuthMiddleware provides middleware for bearer token authentication.
type AuthMiddleware struct {
	tokenSvc     service.TokenService
	identityRepo repository.IdentityRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, identityRepo repository.IdentityRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, identityRepo: identityRepo}
}

// Authenticate validates the bearer token and checks the ledger-resident
// login mirror. A token minted before a logout is rejected even when its
// signature and expiry are still valid. Failures surface as the domain
// unauthorized error so the central error handler renders the 401 envelope.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, errMsg := bearerToken(c)
		if errMsg != "" {
			return domainerrors.ErrUnauthorized.WrapMessage(errMsg)
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return domainerrors.ErrUnauthorized.WrapMessage("invalid or expired token")
		}

		identity, err := m.identityRepo.FindByID(c.Request().Context(), claims.IdentityID)
		if err != nil {
			return domainerrors.ErrUnauthorized.WrapMessage("unknown identity")
		}
		if !identity.IsRegistered || !identity.IsLoggedIn {
			return domainerrors.ErrUnauthorized.WrapMessage("identity is not logged in")
		}

		c.Set(ContextKeyIdentityID, identity.ID)

		return next(c)
	}
}

// Identify extracts the identity from a bearer token when one is present but
// never rejects the request. Read endpoints use it to personalize responses.
func (m *AuthMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, errMsg := bearerToken(c)
		if errMsg != "" {
			return next(c)
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return next(c)
		}

		c.Set(ContextKeyIdentityID, entity.NormalizeIdentityID(claims.IdentityID))

		return next(c)
	}
}

// IdentityID returns the authenticated identity identifier set by
// Authenticate, or an empty string when the request is anonymous.
func IdentityID(c echo.Context) string {
	if id, ok := c.Get(ContextKeyIdentityID).(string); ok {
		return id
	}

	return ""
}

func bearerToken(c echo.Context) (token string, errMsg string) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", "authorization header is missing"
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return "", "invalid token format, must be Bearer token"
	}

	return tokenString, ""
}
