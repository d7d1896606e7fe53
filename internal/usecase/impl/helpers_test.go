package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"herbarium/config"
	"herbarium/internal/domain/repository"
	"herbarium/internal/infra/auth"
	"herbarium/internal/infra/persistence/ledger"
	"herbarium/internal/infra/persistence/memoryledger"
	"herbarium/internal/usecase"
	"herbarium/internal/util"

	"github.com/stretchr/testify/require"
)

// testFixtures wires every service against one shared in-memory ledger, the
// same way the application composes them.
type testFixtures struct {
	store          *memoryledger.Store
	identityRepo   repository.IdentityRepository
	plantRepo      repository.PlantRepository
	engagementRepo repository.EngagementRepository
	provenanceRepo repository.ProvenanceRepository

	authSvc       usecase.AuthUsecase
	plantSvc      usecase.PlantUsecase
	engagementSvc usecase.EngagementUsecase
	provenanceSvc usecase.ProvenanceUsecase
}

func newTestFixtures(t *testing.T) *testFixtures {
	t.Helper()

	cfg := &config.Config{
		Auth:     &config.AuthConfig{BcryptCost: 4, TokenTTL: time.Hour},
		Registry: &config.RegistryConfig{DefaultPageSize: 10, MaxPageSize: 50},
	}
	cfg.SecretKey.Access = "test-secret-key-long-enough-for-hs256"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := memoryledger.New()
	identityRepo := ledger.NewIdentityRepository(store)
	plantRepo := ledger.NewPlantRepository(store)
	engagementRepo := ledger.NewEngagementRepository(store)
	provenanceRepo := ledger.NewProvenanceRepository(store)

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	locks := util.NewKeyedMutex()

	return &testFixtures{
		store:          store,
		identityRepo:   identityRepo,
		plantRepo:      plantRepo,
		engagementRepo: engagementRepo,
		provenanceRepo: provenanceRepo,
		authSvc:        NewAuthService(identityRepo, hasher, tokenSvc, cfg, logger),
		plantSvc:       NewPlantService(plantRepo, engagementRepo, provenanceRepo, locks, cfg, logger),
		engagementSvc:  NewEngagementService(plantRepo, engagementRepo, identityRepo, locks, logger),
		provenanceSvc:  NewProvenanceService(plantRepo, provenanceRepo, cfg, logger),
	}
}

// registerIdentity creates an identity and returns its identifier.
func (f *testFixtures) registerIdentity(t *testing.T, fullName string) string {
	t.Helper()

	out, err := f.authSvc.Register(context.Background(), &usecase.RegisterInput{
		FullName: fullName,
		Password: "herbal-secret-1",
	})
	require.NoError(t, err)

	return out.IdentityID
}

// addPlant registers a plant owned by ownerID and returns its identifier.
func (f *testFixtures) addPlant(t *testing.T, ownerID, name string) uint64 {
	t.Helper()

	out, err := f.plantSvc.AddPlant(context.Background(), ownerID, &usecase.PlantInput{
		Name:        name,
		LatinName:   "Zingiber officinale",
		Composition: "Gingerol",
		Usage:       "Nausea relief",
	})
	require.NoError(t, err)

	return out.PlantID
}
