package usecase

import "context"

// PlantUsecase defines the interface for plant registry operations.
type PlantUsecase interface {
	// AddPlant registers a new plant owned by the actor and records the
	// creation in the provenance history.
	AddPlant(ctx context.Context, actorID string, input *PlantInput) (*PlantMutationOutput, error)

	// EditPlant replaces the descriptive content of an existing plant. Only
	// the owner may edit; ownership comparison is case-insensitive.
	EditPlant(ctx context.Context, actorID string, plantID uint64, input *PlantInput) (*PlantMutationOutput, error)

	// GetPlant retrieves a single plant. When callerID is non-empty the view
	// reports whether that identity currently likes the plant.
	GetPlant(ctx context.Context, plantID uint64, callerID string) (*PlantView, error)

	// ListPlants returns one page of the registry. Pages are 1-based.
	ListPlants(ctx context.Context, page, pageSize int) (*PlantPage, error)

	// CountPlants returns the number of registered plants.
	CountPlants(ctx context.Context) (uint64, error)

	// SearchPlants returns plants matching every present filter, in
	// ascending identifier order.
	SearchPlants(ctx context.Context, input *SearchPlantsInput) ([]*PlantView, error)
}

// --- Input DTOs ---

// PlantInput defines the descriptive content for creating or editing a plant.
type PlantInput struct {
	Name        string `json:"name" validate:"required"`
	LatinName   string `json:"latin_name"`
	Composition string `json:"composition"`
	Usage       string `json:"usage"`
	Dosage      string `json:"dosage"`
	Preparation string `json:"preparation"`
	SideEffects string `json:"side_effects"`
	MediaRef    string `json:"media_ref"`
}

// SearchPlantsInput defines the optional case-insensitive substring filters.
// Filters are combined with AND; an absent filter matches everything.
type SearchPlantsInput struct {
	Name        string `json:"name"`
	LatinName   string `json:"latin_name"`
	Composition string `json:"composition"`
	Usage       string `json:"usage"`
}

// --- Output DTOs ---

// PlantMutationOutput is returned after a successful create or edit.
type PlantMutationOutput struct {
	PlantID uint64 `json:"plant_id"`
	TxRef   string `json:"tx_ref"`
}

// PlantView is the presentation form of a plant record.
type PlantView struct {
	PlantID       uint64  `json:"plant_id"`
	Name          string  `json:"name"`
	LatinName     string  `json:"latin_name"`
	Composition   string  `json:"composition"`
	Usage         string  `json:"usage"`
	Dosage        string  `json:"dosage"`
	Preparation   string  `json:"preparation"`
	SideEffects   string  `json:"side_effects"`
	MediaRef      string  `json:"media_ref"`
	Owner         string  `json:"owner"`
	RatingTotal   uint64  `json:"rating_total"`
	RatingCount   uint64  `json:"rating_count"`
	AverageRating float64 `json:"average_rating"`
	LikeCount     uint64  `json:"like_count"`
	IsLiked       bool    `json:"is_liked"`
	CreatedAt     int64   `json:"created_at"`
	UpdatedAt     int64   `json:"updated_at"`
}

// PlantPage is one page of the registry listing.
type PlantPage struct {
	Plants   []*PlantView `json:"plants"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Total    uint64       `json:"total"`
}
