package usecase

import "context"

// EngagementUsecase defines the interface for ratings, likes and comments.
type EngagementUsecase interface {
	// RatePlant records the actor's rating, replacing any prior rating by
	// the same identity. Rating values are 1 to 5.
	RatePlant(ctx context.Context, actorID string, plantID uint64, rating uint8) (*EngagementOutput, error)

	// LikePlant toggles the actor's like. Two toggles restore the prior state.
	LikePlant(ctx context.Context, actorID string, plantID uint64) (*LikeOutput, error)

	// CommentPlant appends a comment to the plant's comment sequence.
	CommentPlant(ctx context.Context, actorID string, plantID uint64, text string) (*CommentOutput, error)

	// AverageRating returns the plant's mean rating, zero when unrated.
	AverageRating(ctx context.Context, plantID uint64) (float64, error)

	// PlantRatings returns the current rating values for the plant.
	PlantRatings(ctx context.Context, plantID uint64) ([]uint8, error)

	// PlantComments returns the plant's comments in append order, enriched
	// with the authors' display names.
	PlantComments(ctx context.Context, plantID uint64) ([]*CommentViewOutput, error)
}

// --- Output DTOs ---

// EngagementOutput is returned after a successful rating write.
type EngagementOutput struct {
	PlantID uint64 `json:"plant_id"`
	TxRef   string `json:"tx_ref"`
}

// LikeOutput is returned after a successful like toggle.
type LikeOutput struct {
	PlantID uint64 `json:"plant_id"`
	Liked   bool   `json:"liked"` // The actor's like state after the toggle.
	TxRef   string `json:"tx_ref"`
}

// CommentOutput is returned after a successful comment append.
type CommentOutput struct {
	PlantID   uint64 `json:"plant_id"`
	CommentID uint64 `json:"comment_id"`
	TxRef     string `json:"tx_ref"`
}

// CommentViewOutput is the presentation form of one comment.
type CommentViewOutput struct {
	CommentID  uint64 `json:"comment_id"`
	PlantID    uint64 `json:"plant_id"`
	Author     string `json:"author"`
	AuthorName string `json:"author_name"`
	Text       string `json:"text"`
	CreatedAt  int64  `json:"created_at"`
}
