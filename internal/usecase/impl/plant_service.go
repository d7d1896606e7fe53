package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"herbarium/config"
	deliverycontext "herbarium/internal/delivery/context"
	"herbarium/internal/domain/entity"
	domainerrors "herbarium/internal/domain/errors"
	"herbarium/internal/domain/repository"
	"herbarium/internal/usecase"
	"herbarium/internal/util"

	"github.com/pkg/errors"
)

// plantService implements the PlantUsecase interface.
type plantService struct {
	plantRepo      repository.PlantRepository
	engagementRepo repository.EngagementRepository
	provenanceRepo repository.ProvenanceRepository
	locks          *util.KeyedMutex
	cfg            *config.Config
	logger         *slog.Logger
}

// NewPlantService is the constructor for plantService. The keyed mutex is
// shared with the engagement service so all writers to one plant serialize.
func NewPlantService(
	plantRepo repository.PlantRepository,
	engagementRepo repository.EngagementRepository,
	provenanceRepo repository.ProvenanceRepository,
	locks *util.KeyedMutex,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.PlantUsecase {
	return &plantService{
		plantRepo:      plantRepo,
		engagementRepo: engagementRepo,
		provenanceRepo: provenanceRepo,
		locks:          locks,
		cfg:            cfg,
		logger:         logger,
	}
}

func (srv *plantService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func plantLockKey(plantID uint64) string {
	return "plant/" + strconv.FormatUint(plantID, 10)
}

// AddPlant registers a new plant owned by the actor.
func (srv *plantService) AddPlant(ctx context.Context, actorID string, input *usecase.PlantInput) (*usecase.PlantMutationOutput, error) {
	// 1. Name is the only required content field
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.Wrap(domainerrors.ErrInvalidField, "plant name must not be empty")
	}

	// 2. Build the record; blank optional fields are normalized at read time
	now := time.Now().UTC()
	plant := &entity.Plant{
		Content:   inputToContent(input),
		Owner:     entity.NormalizeIdentityID(actorID),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 3. Append to the registry; the identifier is assigned atomically here
	txRef, err := srv.plantRepo.Create(ctx, plant)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create plant")
	}

	// 4. Record the mutation. The plant write already succeeded, so a
	// provenance failure is logged and the call still succeeds; the record
	// is visible without history until the next successful mutation.
	srv.recordMutation(ctx, plant.ID, plant.Owner, txRef, now)

	srv.log(ctx).Info("plant registered",
		slog.Uint64("plantID", plant.ID),
		slog.String("owner", plant.Owner),
	)

	return &usecase.PlantMutationOutput{PlantID: plant.ID, TxRef: string(txRef)}, nil
}

// EditPlant replaces the descriptive content of an existing plant.
func (srv *plantService) EditPlant(ctx context.Context, actorID string, plantID uint64, input *usecase.PlantInput) (*usecase.PlantMutationOutput, error) {
	// 1. Validate before taking the lock or touching the ledger
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.Wrap(domainerrors.ErrInvalidField, "plant name must not be empty")
	}

	srv.locks.Lock(plantLockKey(plantID))
	defer srv.locks.Unlock(plantLockKey(plantID))

	// 2. Load the record
	plant, err := srv.plantRepo.FindByID(ctx, plantID)
	if err != nil {
		if errors.Is(err, repository.ErrPlantNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPlantNotFound, "plant not found")
		}

		return nil, errors.Wrap(err, "failed to find plant")
	}

	// 3. Only the owner may edit
	if !plant.OwnedBy(actorID) {
		return nil, errors.Wrap(domainerrors.ErrPlantOwnershipViolation, "actor does not own this plant")
	}

	// 4. Replace content only; owner and aggregates are untouched
	now := time.Now().UTC()
	plant.Content = inputToContent(input)
	plant.UpdatedAt = now

	txRef, err := srv.plantRepo.Update(ctx, plant)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update plant")
	}

	// 5. Record the mutation, best-effort as on create
	srv.recordMutation(ctx, plant.ID, entity.NormalizeIdentityID(actorID), txRef, now)

	srv.log(ctx).Info("plant edited", slog.Uint64("plantID", plant.ID))

	return &usecase.PlantMutationOutput{PlantID: plant.ID, TxRef: string(txRef)}, nil
}

// GetPlant retrieves a single plant view.
func (srv *plantService) GetPlant(ctx context.Context, plantID uint64, callerID string) (*usecase.PlantView, error) {
	plant, err := srv.plantRepo.FindByID(ctx, plantID)
	if err != nil {
		if errors.Is(err, repository.ErrPlantNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPlantNotFound, "plant not found")
		}

		return nil, errors.Wrap(err, "failed to find plant")
	}

	view := plantToView(plant)

	if callerID != "" {
		likes, err := srv.engagementRepo.Likes(ctx, plantID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load likes")
		}
		view.IsLiked = likes[entity.NormalizeIdentityID(callerID)]
	}

	return view, nil
}

// ListPlants returns one page of the registry.
func (srv *plantService) ListPlants(ctx context.Context, page, pageSize int) (*usecase.PlantPage, error) {
	page, pageSize = srv.clampPaging(page, pageSize)

	total, err := srv.plantRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count plants")
	}

	start := uint64(page-1) * uint64(pageSize)
	plants, err := srv.plantRepo.FindRange(ctx, start, uint64(pageSize))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list plants")
	}

	views := make([]*usecase.PlantView, 0, len(plants))
	for _, plant := range plants {
		views = append(views, plantToView(plant))
	}

	return &usecase.PlantPage{
		Plants:   views,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

// CountPlants returns the number of registered plants.
func (srv *plantService) CountPlants(ctx context.Context) (uint64, error) {
	count, err := srv.plantRepo.Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count plants")
	}

	return count, nil
}

// SearchPlants scans the registry and returns plants matching every present
// filter, in ascending identifier order.
func (srv *plantService) SearchPlants(ctx context.Context, input *usecase.SearchPlantsInput) ([]*usecase.PlantView, error) {
	count, err := srv.plantRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count plants")
	}

	plants, err := srv.plantRepo.FindRange(ctx, 0, count)
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan plants")
	}

	views := make([]*usecase.PlantView, 0)
	for _, plant := range plants {
		if !matchesSearch(plant, input) {
			continue
		}
		views = append(views, plantToView(plant))
	}

	return views, nil
}

// recordMutation appends a provenance record. Failures are logged, never
// propagated; the preceding record write already committed.
func (srv *plantService) recordMutation(ctx context.Context, plantID uint64, actorID string, txRef repository.TxRef, at time.Time) {
	record := &entity.ProvenanceRecord{
		PlantID:   plantID,
		Actor:     actorID,
		TxRef:     string(txRef),
		Timestamp: at.Unix(),
	}
	if _, err := srv.provenanceRepo.Append(ctx, record); err != nil {
		srv.log(ctx).Warn("failed to append provenance record",
			slog.Uint64("plantID", plantID),
			slog.Any("error", err),
		)
	}
}

func (srv *plantService) clampPaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = srv.cfg.Registry.DefaultPageSize
	}
	if pageSize > srv.cfg.Registry.MaxPageSize {
		pageSize = srv.cfg.Registry.MaxPageSize
	}

	return page, pageSize
}

func inputToContent(input *usecase.PlantInput) entity.PlantContent {
	return entity.PlantContent{
		Name:        strings.TrimSpace(input.Name),
		LatinName:   strings.TrimSpace(input.LatinName),
		Composition: strings.TrimSpace(input.Composition),
		Usage:       strings.TrimSpace(input.Usage),
		Dosage:      strings.TrimSpace(input.Dosage),
		Preparation: strings.TrimSpace(input.Preparation),
		SideEffects: strings.TrimSpace(input.SideEffects),
		MediaRef:    strings.TrimSpace(input.MediaRef),
	}
}

func matchesSearch(plant *entity.Plant, input *usecase.SearchPlantsInput) bool {
	filters := []struct {
		needle   string
		haystack string
	}{
		{input.Name, plant.Content.Name},
		{input.LatinName, plant.Content.LatinName},
		{input.Composition, plant.Content.Composition},
		{input.Usage, plant.Content.Usage},
	}

	for _, f := range filters {
		needle := strings.TrimSpace(f.needle)
		if needle == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(f.haystack), strings.ToLower(needle)) {
			return false
		}
	}

	return true
}

func plantToView(plant *entity.Plant) *usecase.PlantView {
	content := plant.Content.Normalized()

	return &usecase.PlantView{
		PlantID:       plant.ID,
		Name:          content.Name,
		LatinName:     content.LatinName,
		Composition:   content.Composition,
		Usage:         content.Usage,
		Dosage:        content.Dosage,
		Preparation:   content.Preparation,
		SideEffects:   content.SideEffects,
		MediaRef:      content.MediaRef,
		Owner:         plant.Owner,
		RatingTotal:   plant.RatingTotal,
		RatingCount:   plant.RatingCount,
		AverageRating: plant.AverageRating(),
		LikeCount:     plant.LikeCount,
		CreatedAt:     plant.CreatedAt.Unix(),
		UpdatedAt:     plant.UpdatedAt.Unix(),
	}
}
