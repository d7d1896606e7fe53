// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// Identity is the core account entity, keyed by an address-like identifier
// rather than an email. Identifiers are compared case-insensitively, so the
// canonical lowercase form is stored on the ledger.
type Identity struct {
	ID             string    // Address-like identifier, canonical lowercase form.
	FullName       string    // The holder's display name.
	CredentialHash string    // Salted hash of the holder's credential. Never the plaintext.
	IsRegistered   bool      // True once the identity has been written to the ledger.
	IsLoggedIn     bool      // Ledger-resident login mirror. The bearer token is the authority.
	CreatedAt      time.Time // Timestamp of when this identity was registered.
}

// NormalizeIdentityID returns the canonical form used for ledger keys and
// ownership comparison.
func NormalizeIdentityID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// SameIdentity reports whether two identifiers refer to the same identity.
func SameIdentity(a, b string) bool {
	return NormalizeIdentityID(a) == NormalizeIdentityID(b)
}
