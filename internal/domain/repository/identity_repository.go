package repository

import (
	"context"
	"errors"

	"herbarium/internal/domain/entity"
)

// ErrIdentityNotFound is a domain-specific error returned when an identity is not found.
var ErrIdentityNotFound = errors.New("identity not found")

// IdentityRepository defines the standard operations for identity persistence.
// The application layer will depend on this interface, not the concrete implementation.
type IdentityRepository interface {
	// FindByID retrieves a single identity by its identifier. Lookup is
	// case-insensitive.
	FindByID(ctx context.Context, id string) (*entity.Identity, error)

	// Create persists a new identity to the ledger and returns the write's
	// transaction reference.
	Create(ctx context.Context, identity *entity.Identity) (TxRef, error)

	// SetLoggedIn updates the ledger-resident login mirror. Last write wins
	// under concurrent sessions.
	SetLoggedIn(ctx context.Context, id string, loggedIn bool) (TxRef, error)
}
