package entity

import "time"

// RatingSheet maps the canonical identity identifier to that identity's
// current rating value for one plant. Re-rating replaces the prior value.
type RatingSheet map[string]uint8

// LikeSheet maps the canonical identity identifier to its like state for one
// plant. Absent or false means not liked.
type LikeSheet map[string]bool

// Comment is a single append-only comment on a plant record.
type Comment struct {
	ID        uint64    // Zero-based position in the plant's comment sequence.
	PlantID   uint64    // The plant the comment belongs to.
	Author    string    // Canonical identity identifier of the commenter.
	Text      string    // The comment body. Never blank.
	CreatedAt time.Time // When the comment was appended.
}

// CommentView is a comment enriched with the author's display name for
// presentation. AuthorName falls back to the placeholder when the author
// identity cannot be resolved.
type CommentView struct {
	Comment
	AuthorName string
}
