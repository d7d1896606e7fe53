// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"herbarium/internal/delivery/http/middleware"
	"herbarium/internal/delivery/http/response"
	"herbarium/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for identity-related handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the identity registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Identity registered successfully")
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// Logout handles the logout request for the authenticated identity.
func (h *AuthHandler) Logout(c echo.Context) error {
	identityID := middleware.IdentityID(c)
	if identityID == "" {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing identity in token")
	}

	if err := h.uc.Logout(c.Request().Context(), identityID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"identity_id": identityID}, "Logout successful")
}

// Status reports the ledger-resident login mirror for the authenticated identity.
func (h *AuthHandler) Status(c echo.Context) error {
	identityID := middleware.IdentityID(c)
	if identityID == "" {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing identity in token")
	}

	loggedIn, err := h.uc.LoginStatus(c.Request().Context(), identityID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"identity_id": identityID,
		"logged_in":   loggedIn,
	}, "Login status retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
