package impl

import (
	"context"
	"strings"
	"testing"

	domainerrors "herbarium/internal/domain/errors"
	"herbarium/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterGeneratesAddressLikeID(t *testing.T) {
	f := newTestFixtures(t)

	out, err := f.authSvc.Register(context.Background(), &usecase.RegisterInput{
		FullName: "Ana Maria",
		Password: "herbal-secret-1",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.IdentityID, "0x"))
	assert.Len(t, out.IdentityID, 42)
	assert.NotEmpty(t, out.TxRef)
}

func TestAuthService_RegisterWithExplicitID(t *testing.T) {
	f := newTestFixtures(t)

	out, err := f.authSvc.Register(context.Background(), &usecase.RegisterInput{
		FullName:   "Ana Maria",
		Password:   "herbal-secret-1",
		IdentityID: "0xABCDEF",
	})
	require.NoError(t, err)

	// Identifier is stored in canonical lowercase form
	assert.Equal(t, "0xabcdef", out.IdentityID)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()

	_, err := f.authSvc.Register(ctx, &usecase.RegisterInput{
		FullName: "Ana", Password: "herbal-secret-1", IdentityID: "0xabc",
	})
	require.NoError(t, err)

	// Same identity in a different case is still a duplicate
	_, err = f.authSvc.Register(ctx, &usecase.RegisterInput{
		FullName: "Impostor", Password: "other-secret-2", IdentityID: "0xABC",
	})
	assert.ErrorIs(t, err, domainerrors.ErrIdentityAlreadyExists)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()

	_, err := f.authSvc.Register(ctx, &usecase.RegisterInput{FullName: "  ", Password: "herbal-secret-1"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = f.authSvc.Register(ctx, &usecase.RegisterInput{FullName: "Ana", Password: ""})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthService_LoginSuccess(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()

	id := f.registerIdentity(t, "Ana Maria")

	out, err := f.authSvc.Login(ctx, &usecase.LoginInput{IdentityID: id, Password: "herbal-secret-1"})
	require.NoError(t, err)
	assert.Equal(t, id, out.IdentityID)
	assert.Equal(t, "Ana Maria", out.FullName)
	assert.NotEmpty(t, out.Token)
	assert.Positive(t, out.ExpiresIn)

	// Login mirror is set on the ledger
	status, err := f.authSvc.LoginStatus(ctx, id)
	require.NoError(t, err)
	assert.True(t, status)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	f := newTestFixtures(t)

	id := f.registerIdentity(t, "Ana Maria")

	_, err := f.authSvc.Login(context.Background(), &usecase.LoginInput{
		IdentityID: id, Password: "wrong-secret",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredential)
}

func TestAuthService_LoginUnknownIdentity(t *testing.T) {
	f := newTestFixtures(t)

	// Unknown identities fail identically to a wrong password
	_, err := f.authSvc.Login(context.Background(), &usecase.LoginInput{
		IdentityID: "0xnobody", Password: "herbal-secret-1",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredential)
}

func TestAuthService_LogoutClearsMirror(t *testing.T) {
	f := newTestFixtures(t)
	ctx := context.Background()

	id := f.registerIdentity(t, "Ana Maria")
	_, err := f.authSvc.Login(ctx, &usecase.LoginInput{IdentityID: id, Password: "herbal-secret-1"})
	require.NoError(t, err)

	require.NoError(t, f.authSvc.Logout(ctx, id))

	status, err := f.authSvc.LoginStatus(ctx, id)
	require.NoError(t, err)
	assert.False(t, status)
}

func TestAuthService_LogoutUnknownIdentity(t *testing.T) {
	f := newTestFixtures(t)

	err := f.authSvc.Logout(context.Background(), "0xnobody")
	assert.ErrorIs(t, err, domainerrors.ErrIdentityNotFound)
}

func TestAuthService_LoginStatusUnknownIdentity(t *testing.T) {
	f := newTestFixtures(t)

	_, err := f.authSvc.LoginStatus(context.Background(), "0xnobody")
	assert.ErrorIs(t, err, domainerrors.ErrIdentityNotFound)
}
