package ledger

import (
	"context"
	"encoding/json"
	"time"

	"herbarium/internal/domain/entity"
	domainerrors "herbarium/internal/domain/errors"
	"herbarium/internal/domain/repository"
	"herbarium/internal/errors"
)

// commentDoc is the JSON form of one comment in a plant's comment collection.
type commentDoc struct {
	PlantID   uint64    `json:"plantId"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type engagementRepository struct {
	store repository.LedgerStore
}

// NewEngagementRepository creates a ledger-backed engagement repository.
func NewEngagementRepository(store repository.LedgerStore) repository.EngagementRepository {
	return &engagementRepository{store: store}
}

// Ratings loads the plant's rating sheet. A plant never rated yields an
// empty sheet.
func (r *engagementRepository) Ratings(ctx context.Context, plantID uint64) (entity.RatingSheet, error) {
	sheet := entity.RatingSheet{}
	if err := r.loadSheet(ctx, ratingsKey(plantID), &sheet, "read ratings"); err != nil {
		return nil, err
	}

	return sheet, nil
}

// SaveRatings replaces the plant's rating sheet.
func (r *engagementRepository) SaveRatings(ctx context.Context, plantID uint64, sheet entity.RatingSheet) (repository.TxRef, error) {
	return r.saveSheet(ctx, ratingsKey(plantID), sheet, "write ratings")
}

// Likes loads the plant's like sheet. A plant never liked yields an empty sheet.
func (r *engagementRepository) Likes(ctx context.Context, plantID uint64) (entity.LikeSheet, error) {
	sheet := entity.LikeSheet{}
	if err := r.loadSheet(ctx, likesKey(plantID), &sheet, "read likes"); err != nil {
		return nil, err
	}

	return sheet, nil
}

// SaveLikes replaces the plant's like sheet.
func (r *engagementRepository) SaveLikes(ctx context.Context, plantID uint64, sheet entity.LikeSheet) (repository.TxRef, error) {
	return r.saveSheet(ctx, likesKey(plantID), sheet, "write likes")
}

// AppendComment adds a comment to the end of the plant's comment sequence.
// The assigned identifier is the comment's position in that sequence.
func (r *engagementRepository) AppendComment(ctx context.Context, comment *entity.Comment) (repository.TxRef, error) {
	raw, err := json.Marshal(commentDoc{
		PlantID:   comment.PlantID,
		Author:    comment.Author,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	})
	if err != nil {
		return "", errors.Wrap(err, "encode comment document")
	}

	index, txRef, err := r.store.Append(ctx, commentsCollection(comment.PlantID), raw)
	if err != nil {
		return "", domainerrors.NewLedgerExecuteError(err, "append comment")
	}

	comment.ID = index

	return txRef, nil
}

// Comments returns the plant's full comment sequence in append order.
func (r *engagementRepository) Comments(ctx context.Context, plantID uint64) ([]entity.Comment, error) {
	collection := commentsCollection(plantID)

	count, err := r.store.Count(ctx, collection)
	if err != nil {
		return nil, domainerrors.NewLedgerExecuteError(err, "count comments")
	}

	comments := make([]entity.Comment, 0, count)
	for index := uint64(0); index < count; index++ {
		raw, err := r.store.Item(ctx, collection, index)
		if err != nil {
			return nil, domainerrors.NewLedgerExecuteError(err, "read comment")
		}

		var doc commentDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, errors.Wrap(err, "decode comment document")
		}

		comments = append(comments, entity.Comment{
			ID:        index,
			PlantID:   doc.PlantID,
			Author:    doc.Author,
			Text:      doc.Text,
			CreatedAt: doc.CreatedAt,
		})
	}

	return comments, nil
}

func (r *engagementRepository) loadSheet(ctx context.Context, key string, sheet any, op string) error {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			// Sheet has never been written; the zero sheet is valid.
			return nil
		}

		return domainerrors.NewLedgerExecuteError(err, op)
	}

	if err := json.Unmarshal(raw, sheet); err != nil {
		return errors.Wrap(err, "decode engagement sheet")
	}

	return nil
}

func (r *engagementRepository) saveSheet(ctx context.Context, key string, sheet any, op string) (repository.TxRef, error) {
	raw, err := json.Marshal(sheet)
	if err != nil {
		return "", errors.Wrap(err, "encode engagement sheet")
	}

	txRef, err := r.store.Put(ctx, key, raw)
	if err != nil {
		return "", domainerrors.NewLedgerExecuteError(err, op)
	}

	return txRef, nil
}
