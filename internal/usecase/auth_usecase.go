// Package usecase contains the application-specific business rules.
package usecase

import "context"

// AuthUsecase defines the interface for identity and session operations.
type AuthUsecase interface {
	// Register creates a new identity on the ledger. When no identifier is
	// supplied, an address-like one is generated.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies the credential and issues a bearer token. The
	// ledger-resident login mirror is set best-effort.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Logout clears the ledger-resident login mirror, revoking outstanding
	// tokens for the identity.
	Logout(ctx context.Context, identityID string) error

	// LoginStatus reports the ledger-resident login mirror state.
	LoginStatus(ctx context.Context, identityID string) (bool, error)
}

// --- Input DTOs ---

// RegisterInput defines the data required to register an identity.
type RegisterInput struct {
	FullName   string `json:"full_name" validate:"required"`
	Password   string `json:"password" validate:"required,min=8"`
	IdentityID string `json:"identity_id,omitempty"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	IdentityID string `json:"identity_id" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput is returned after a successful registration.
type RegisterOutput struct {
	IdentityID string `json:"identity_id"`
	TxRef      string `json:"tx_ref"`
}

// LoginOutput is returned after a successful login.
type LoginOutput struct {
	IdentityID string `json:"identity_id"`
	FullName   string `json:"full_name"`
	Token      string `json:"token"`
	ExpiresIn  int64  `json:"expires_in"` // Seconds until the token expires.
}
