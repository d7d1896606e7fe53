package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	deliverycontext "herbarium/internal/delivery/context"
	"herbarium/internal/domain/entity"
	domainerrors "herbarium/internal/domain/errors"
	"herbarium/internal/domain/repository"
	"herbarium/internal/usecase"
	"herbarium/internal/util"

	"github.com/pkg/errors"
)

const (
	minRating = 1
	maxRating = 5
)

// engagementService implements the EngagementUsecase interface.
type engagementService struct {
	plantRepo      repository.PlantRepository
	engagementRepo repository.EngagementRepository
	identityRepo   repository.IdentityRepository
	locks          *util.KeyedMutex
	logger         *slog.Logger
}

// NewEngagementService is the constructor for engagementService. The keyed
// mutex is the same instance the plant service uses, so aggregate updates and
// content edits to one plant serialize against each other.
func NewEngagementService(
	plantRepo repository.PlantRepository,
	engagementRepo repository.EngagementRepository,
	identityRepo repository.IdentityRepository,
	locks *util.KeyedMutex,
	logger *slog.Logger,
) usecase.EngagementUsecase {
	return &engagementService{
		plantRepo:      plantRepo,
		engagementRepo: engagementRepo,
		identityRepo:   identityRepo,
		locks:          locks,
		logger:         logger,
	}
}

func (srv *engagementService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RatePlant records the actor's rating and applies the delta to the plant's
// aggregates. Re-rating replaces the prior value without changing the count.
func (srv *engagementService) RatePlant(ctx context.Context, actorID string, plantID uint64, rating uint8) (*usecase.EngagementOutput, error) {
	// 1. Validate before any ledger access
	if rating < minRating || rating > maxRating {
		return nil, errors.Wrap(domainerrors.ErrInvalidRating, "rating out of range")
	}

	actor := entity.NormalizeIdentityID(actorID)

	srv.locks.Lock(plantLockKey(plantID))
	defer srv.locks.Unlock(plantLockKey(plantID))

	// 2. Load the plant and the rating sheet
	plant, err := srv.findPlant(ctx, plantID)
	if err != nil {
		return nil, err
	}

	sheet, err := srv.engagementRepo.Ratings(ctx, plantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ratings")
	}

	// 3. Replace the actor's rating and apply the delta
	prior, rated := sheet[actor]
	sheet[actor] = rating

	txRef, err := srv.engagementRepo.SaveRatings(ctx, plantID, sheet)
	if err != nil {
		return nil, errors.Wrap(err, "failed to save ratings")
	}

	if rated {
		plant.RatingTotal = plant.RatingTotal - uint64(prior) + uint64(rating)
	} else {
		plant.RatingTotal += uint64(rating)
		plant.RatingCount++
	}
	plant.UpdatedAt = time.Now().UTC()

	// 4. Persist the aggregates
	if _, err := srv.plantRepo.Update(ctx, plant); err != nil {
		return nil, errors.Wrap(err, "failed to update plant aggregates")
	}

	srv.log(ctx).Info("plant rated",
		slog.Uint64("plantID", plantID),
		slog.Int("rating", int(rating)),
	)

	return &usecase.EngagementOutput{PlantID: plantID, TxRef: string(txRef)}, nil
}

// LikePlant toggles the actor's like and adjusts the like count.
func (srv *engagementService) LikePlant(ctx context.Context, actorID string, plantID uint64) (*usecase.LikeOutput, error) {
	actor := entity.NormalizeIdentityID(actorID)

	srv.locks.Lock(plantLockKey(plantID))
	defer srv.locks.Unlock(plantLockKey(plantID))

	plant, err := srv.findPlant(ctx, plantID)
	if err != nil {
		return nil, err
	}

	sheet, err := srv.engagementRepo.Likes(ctx, plantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load likes")
	}

	liked := !sheet[actor]
	sheet[actor] = liked

	txRef, err := srv.engagementRepo.SaveLikes(ctx, plantID, sheet)
	if err != nil {
		return nil, errors.Wrap(err, "failed to save likes")
	}

	if liked {
		plant.LikeCount++
	} else if plant.LikeCount > 0 {
		plant.LikeCount--
	}
	plant.UpdatedAt = time.Now().UTC()

	if _, err := srv.plantRepo.Update(ctx, plant); err != nil {
		return nil, errors.Wrap(err, "failed to update plant aggregates")
	}

	srv.log(ctx).Info("plant like toggled",
		slog.Uint64("plantID", plantID),
		slog.Bool("liked", liked),
	)

	return &usecase.LikeOutput{PlantID: plantID, Liked: liked, TxRef: string(txRef)}, nil
}

// CommentPlant appends a comment to the plant's comment sequence.
func (srv *engagementService) CommentPlant(ctx context.Context, actorID string, plantID uint64, text string) (*usecase.CommentOutput, error) {
	// 1. Validate before any ledger access
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.Wrap(domainerrors.ErrEmptyComment, "comment text must not be empty")
	}

	// 2. The plant must exist. Comment appends are single atomic writes, so
	// no per-plant lock is needed here.
	if _, err := srv.findPlant(ctx, plantID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		PlantID:   plantID,
		Author:    entity.NormalizeIdentityID(actorID),
		Text:      trimmed,
		CreatedAt: time.Now().UTC(),
	}

	txRef, err := srv.engagementRepo.AppendComment(ctx, comment)
	if err != nil {
		return nil, errors.Wrap(err, "failed to append comment")
	}

	srv.log(ctx).Info("plant commented",
		slog.Uint64("plantID", plantID),
		slog.Uint64("commentID", comment.ID),
	)

	return &usecase.CommentOutput{
		PlantID:   plantID,
		CommentID: comment.ID,
		TxRef:     string(txRef),
	}, nil
}

// AverageRating returns the plant's mean rating, zero when unrated.
func (srv *engagementService) AverageRating(ctx context.Context, plantID uint64) (float64, error) {
	plant, err := srv.findPlant(ctx, plantID)
	if err != nil {
		return 0, err
	}

	return plant.AverageRating(), nil
}

// PlantRatings returns the current rating values, ascending for determinism.
func (srv *engagementService) PlantRatings(ctx context.Context, plantID uint64) ([]uint8, error) {
	if _, err := srv.findPlant(ctx, plantID); err != nil {
		return nil, err
	}

	sheet, err := srv.engagementRepo.Ratings(ctx, plantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ratings")
	}

	values := make([]uint8, 0, len(sheet))
	for _, value := range sheet {
		values = append(values, value)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return values, nil
}

// PlantComments returns the plant's comments enriched with author names.
func (srv *engagementService) PlantComments(ctx context.Context, plantID uint64) ([]*usecase.CommentViewOutput, error) {
	if _, err := srv.findPlant(ctx, plantID); err != nil {
		return nil, err
	}

	comments, err := srv.engagementRepo.Comments(ctx, plantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load comments")
	}

	names := make(map[string]string, len(comments))
	views := make([]*usecase.CommentViewOutput, 0, len(comments))
	for _, comment := range comments {
		name, ok := names[comment.Author]
		if !ok {
			name = srv.resolveAuthorName(ctx, comment.Author)
			names[comment.Author] = name
		}

		views = append(views, &usecase.CommentViewOutput{
			CommentID:  comment.ID,
			PlantID:    comment.PlantID,
			Author:     comment.Author,
			AuthorName: name,
			Text:       comment.Text,
			CreatedAt:  comment.CreatedAt.Unix(),
		})
	}

	return views, nil
}

func (srv *engagementService) findPlant(ctx context.Context, plantID uint64) (*entity.Plant, error) {
	plant, err := srv.plantRepo.FindByID(ctx, plantID)
	if err != nil {
		if errors.Is(err, repository.ErrPlantNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPlantNotFound, "plant not found")
		}

		return nil, errors.Wrap(err, "failed to find plant")
	}

	return plant, nil
}

// resolveAuthorName looks up the author's display name, falling back to the
// placeholder when the identity cannot be resolved.
func (srv *engagementService) resolveAuthorName(ctx context.Context, authorID string) string {
	identity, err := srv.identityRepo.FindByID(ctx, authorID)
	if err != nil || strings.TrimSpace(identity.FullName) == "" {
		return entity.UnknownValue
	}

	return identity.FullName
}
