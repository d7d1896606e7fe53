package main

import (
	"context"
	"log/slog"
	"os"

	"herbarium/config"
	"herbarium/internal/delivery"
	"herbarium/internal/delivery/http"
	"herbarium/internal/delivery/http/middleware"
	"herbarium/internal/delivery/http/router/handler"
	sharedmiddleware "herbarium/internal/delivery/middleware"
	"herbarium/internal/domain/repository"
	"herbarium/internal/domain/service"
	"herbarium/internal/infra/auth"
	logs "herbarium/internal/infra/log"
	"herbarium/internal/infra/persistence/ledger"
	"herbarium/internal/infra/persistence/memoryledger"
	"herbarium/internal/infra/persistence/postgres"
	"herbarium/internal/infra/qrcode"
	"herbarium/internal/usecase/impl"
	"herbarium/internal/util"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		util.NewKeyedMutex,
		newLedgerStore,
	)
}

type ledgerStoreParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// newLedgerStore selects the ledger substrate from configuration. The
// in-memory store is the default; postgres is opted into explicitly.
func newLedgerStore(params ledgerStoreParams) (repository.LedgerStore, error) {
	if params.Config.Ledger != nil && params.Config.Ledger.Driver == "postgres" {
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}

		return postgres.NewLedgerStore(db), nil
	}

	return memoryledger.New(), nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			ledger.NewIdentityRepository,
			ledger.NewPlantRepository,
			ledger.NewEngagementRepository,
			ledger.NewProvenanceRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPasswordHasher,
			auth.NewJWTService,
			newQRCodeService,
		),
	)
}

// newPasswordHasher creates a bcrypt hasher with the configured cost
func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	return auth.NewBcryptHasher(cfg.Auth.BcryptCost)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewPlantService,
			impl.NewEngagementService,
			impl.NewProvenanceService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			sharedmiddleware.NewRequestIDMiddleware,
			sharedmiddleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewPlantHandler,
			handler.NewEngagementHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
