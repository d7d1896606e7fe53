package repository

import (
	"context"
	"errors"

	"herbarium/internal/domain/entity"
)

// ErrPlantNotFound is a domain-specific error returned when a plant record is not found.
var ErrPlantNotFound = errors.New("plant not found")

// PlantRepository defines the standard operations for plant record persistence.
type PlantRepository interface {
	// Create appends the plant to the registry, assigning the next zero-based
	// identifier. The identifier on the returned plant is set by this call.
	Create(ctx context.Context, plant *entity.Plant) (TxRef, error)

	// FindByID retrieves a single plant record.
	FindByID(ctx context.Context, id uint64) (*entity.Plant, error)

	// Update replaces the stored record for plant.ID. The caller is
	// responsible for holding the per-plant write lock.
	Update(ctx context.Context, plant *entity.Plant) (TxRef, error)

	// Count returns the number of registered plants.
	Count(ctx context.Context) (uint64, error)

	// FindRange retrieves plants with identifiers in [start, start+limit),
	// clamped to the registry size. Ascending identifier order.
	FindRange(ctx context.Context, start, limit uint64) ([]*entity.Plant, error)
}
