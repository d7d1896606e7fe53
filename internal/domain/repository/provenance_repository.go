package repository

import (
	"context"

	"herbarium/internal/domain/entity"
)

// ProvenanceRepository persists the global append-only mutation history.
type ProvenanceRepository interface {
	// Append adds a record to the global history and returns it with its
	// assigned global identifier.
	Append(ctx context.Context, record *entity.ProvenanceRecord) (TxRef, error)

	// FindByPlant returns every record for the given plant in append order.
	// The history is scanned linearly; there is no per-plant index.
	FindByPlant(ctx context.Context, plantID uint64) ([]entity.ProvenanceRecord, error)
}
