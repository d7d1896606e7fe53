// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"herbarium/config"
	deliverycontext "herbarium/internal/delivery/context"
	"herbarium/internal/domain/entity"
	domainerrors "herbarium/internal/domain/errors"
	"herbarium/internal/domain/repository"
	"herbarium/internal/domain/service"
	"herbarium/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	identityRepo repository.IdentityRepository
	hasher       service.PasswordHasher
	tokenSvc     service.TokenService
	tokenTTL     time.Duration
	logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	identityRepo repository.IdentityRepository,
	hasher service.PasswordHasher,
	tokenSvc service.TokenService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		identityRepo: identityRepo,
		hasher:       hasher,
		tokenSvc:     tokenSvc,
		tokenTTL:     cfg.Auth.TokenTTL,
		logger:       logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new identity on the ledger.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if strings.TrimSpace(input.FullName) == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "full name and password are required")
	}

	// 1. Resolve the identifier, generating an address-like one when absent
	identityID := entity.NormalizeIdentityID(input.IdentityID)
	if identityID == "" {
		identityID = generateIdentityID()
	}

	// 2. Reject duplicate registration
	if _, err := srv.identityRepo.FindByID(ctx, identityID); err == nil {
		return nil, errors.Wrap(domainerrors.ErrIdentityAlreadyExists, "identity already registered")
	} else if !errors.Is(err, repository.ErrIdentityNotFound) {
		return nil, errors.Wrap(err, "failed to check identity")
	}

	// 3. Hash the credential
	credentialHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	// 4. Write the identity to the ledger
	identity := &entity.Identity{
		ID:             identityID,
		FullName:       strings.TrimSpace(input.FullName),
		CredentialHash: credentialHash,
		IsRegistered:   true,
		CreatedAt:      time.Now().UTC(),
	}
	txRef, err := srv.identityRepo.Create(ctx, identity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create identity")
	}

	srv.log(ctx).Info("identity registered", slog.String("identityID", identity.ID))

	return &usecase.RegisterOutput{
		IdentityID: identity.ID,
		TxRef:      string(txRef),
	}, nil
}

// Login verifies the credential and issues a bearer token.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	// 1. Resolve the identity. Unknown identities fail the same way as a
	// wrong password so the response does not reveal which part was wrong.
	identity, err := srv.identityRepo.FindByID(ctx, input.IdentityID)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredential, "unknown identity")
		}

		return nil, errors.Wrap(err, "failed to find identity")
	}

	// 2. Verify the credential
	if !identity.IsRegistered || !srv.hasher.Check(input.Password, identity.CredentialHash) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredential, "credential mismatch")
	}

	// 3. Issue the bearer token. Its lifetime is fixed; there is no refresh.
	token, err := srv.tokenSvc.GenerateToken(identity.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	// 4. Set the ledger login mirror. The token is the authority; a failed
	// mirror write is logged and the login still succeeds.
	if _, err := srv.identityRepo.SetLoggedIn(ctx, identity.ID, true); err != nil {
		srv.log(ctx).Warn("failed to set login mirror",
			slog.String("identityID", identity.ID),
			slog.Any("error", err),
		)
	}

	srv.log(ctx).Info("identity logged in", slog.String("identityID", identity.ID))

	return &usecase.LoginOutput{
		IdentityID: identity.ID,
		FullName:   identity.FullName,
		Token:      token,
		ExpiresIn:  int64(srv.tokenTTL.Seconds()),
	}, nil
}

// Logout clears the ledger login mirror. Unlike the login-side mirror write,
// this one must succeed: it is what revokes outstanding tokens.
func (srv *authService) Logout(ctx context.Context, identityID string) error {
	if _, err := srv.identityRepo.SetLoggedIn(ctx, identityID, false); err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return errors.Wrap(domainerrors.ErrIdentityNotFound, "unknown identity")
		}

		return errors.Wrap(err, "failed to clear login mirror")
	}

	srv.log(ctx).Info("identity logged out", slog.String("identityID", entity.NormalizeIdentityID(identityID)))

	return nil
}

// LoginStatus reports the ledger-resident login mirror state.
func (srv *authService) LoginStatus(ctx context.Context, identityID string) (bool, error) {
	identity, err := srv.identityRepo.FindByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return false, errors.Wrap(domainerrors.ErrIdentityNotFound, "unknown identity")
		}

		return false, errors.Wrap(err, "failed to find identity")
	}

	return identity.IsLoggedIn, nil
}

// generateIdentityID derives a fresh address-like identifier: 20 bytes of a
// hashed random UUID, hex-encoded with the 0x prefix.
func generateIdentityID() string {
	sum := sha256.Sum256([]byte(uuid.NewString()))

	return "0x" + hex.EncodeToString(sum[:20])
}
