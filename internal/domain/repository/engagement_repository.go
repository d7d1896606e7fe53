package repository

import (
	"context"

	"herbarium/internal/domain/entity"
)

// EngagementRepository persists per-plant rating sheets, like sheets and the
// append-only comment sequence. Sheets for a plant with no engagement yet are
// returned empty, not as an error.
type EngagementRepository interface {
	// Ratings loads the plant's rating sheet.
	Ratings(ctx context.Context, plantID uint64) (entity.RatingSheet, error)

	// SaveRatings replaces the plant's rating sheet. The caller holds the
	// per-plant write lock.
	SaveRatings(ctx context.Context, plantID uint64, sheet entity.RatingSheet) (TxRef, error)

	// Likes loads the plant's like sheet.
	Likes(ctx context.Context, plantID uint64) (entity.LikeSheet, error)

	// SaveLikes replaces the plant's like sheet. The caller holds the
	// per-plant write lock.
	SaveLikes(ctx context.Context, plantID uint64, sheet entity.LikeSheet) (TxRef, error)

	// AppendComment adds a comment to the end of the plant's comment
	// sequence and returns it with its assigned identifier.
	AppendComment(ctx context.Context, comment *entity.Comment) (TxRef, error)

	// Comments returns the plant's full comment sequence in append order.
	Comments(ctx context.Context, plantID uint64) ([]entity.Comment, error)
}
