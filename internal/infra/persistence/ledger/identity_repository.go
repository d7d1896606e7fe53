package ledger

import (
	"context"
	"encoding/json"
	"time"

	"herbarium/internal/domain/entity"
	domainerrors "herbarium/internal/domain/errors"
	"herbarium/internal/domain/repository"
	"herbarium/internal/errors"
)

// identityDoc is the JSON form of an identity on the ledger.
type identityDoc struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	CredentialHash string    `json:"credentialHash"`
	IsRegistered   bool      `json:"isRegistered"`
	IsLoggedIn     bool      `json:"isLoggedIn"`
	CreatedAt      time.Time `json:"createdAt"`
}

type identityRepository struct {
	store repository.LedgerStore
}

// NewIdentityRepository creates a ledger-backed identity repository.
func NewIdentityRepository(store repository.LedgerStore) repository.IdentityRepository {
	return &identityRepository{store: store}
}

// FindByID retrieves a single identity. Lookup is case-insensitive via the
// canonical key form.
func (r *identityRepository) FindByID(ctx context.Context, id string) (*entity.Identity, error) {
	canonical := entity.NormalizeIdentityID(id)

	raw, err := r.store.Get(ctx, identityKey(canonical))
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, domainerrors.NewLedgerExecuteError(err, "read identity")
	}

	var doc identityDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "decode identity document")
	}

	return &entity.Identity{
		ID:             doc.ID,
		FullName:       doc.FullName,
		CredentialHash: doc.CredentialHash,
		IsRegistered:   doc.IsRegistered,
		IsLoggedIn:     doc.IsLoggedIn,
		CreatedAt:      doc.CreatedAt,
	}, nil
}

// Create persists a new identity document under the canonical key.
func (r *identityRepository) Create(ctx context.Context, identity *entity.Identity) (repository.TxRef, error) {
	canonical := entity.NormalizeIdentityID(identity.ID)
	identity.ID = canonical

	raw, err := json.Marshal(identityDoc{
		ID:             canonical,
		FullName:       identity.FullName,
		CredentialHash: identity.CredentialHash,
		IsRegistered:   identity.IsRegistered,
		IsLoggedIn:     identity.IsLoggedIn,
		CreatedAt:      identity.CreatedAt,
	})
	if err != nil {
		return "", errors.Wrap(err, "encode identity document")
	}

	txRef, err := r.store.Put(ctx, identityKey(canonical), raw)
	if err != nil {
		return "", domainerrors.NewLedgerExecuteError(err, "write identity")
	}

	return txRef, nil
}

// SetLoggedIn rewrites the identity document with the new login mirror state.
// Read-modify-write; last write wins under concurrent sessions.
func (r *identityRepository) SetLoggedIn(ctx context.Context, id string, loggedIn bool) (repository.TxRef, error) {
	identity, err := r.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	identity.IsLoggedIn = loggedIn

	return r.Create(ctx, identity)
}
