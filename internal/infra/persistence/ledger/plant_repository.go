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

// plantDoc is the JSON form of a plant record on the ledger.
type plantDoc struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	LatinName   string    `json:"latinName"`
	Composition string    `json:"composition"`
	Usage       string    `json:"usage"`
	Dosage      string    `json:"dosage"`
	Preparation string    `json:"preparation"`
	SideEffects string    `json:"sideEffects"`
	MediaRef    string    `json:"mediaRef"`
	Owner       string    `json:"owner"`
	RatingTotal uint64    `json:"ratingTotal"`
	RatingCount uint64    `json:"ratingCount"`
	LikeCount   uint64    `json:"likeCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// creationMarker is the value appended to the plants collection purely to
// reserve the next identifier.
type creationMarker struct {
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
}

type plantRepository struct {
	store repository.LedgerStore
}

// NewPlantRepository creates a ledger-backed plant repository.
func NewPlantRepository(store repository.LedgerStore) repository.PlantRepository {
	return &plantRepository{store: store}
}

// Create reserves the next identifier by appending a creation marker, then
// writes the full record under its key. The two writes are not atomic: a
// crash between them leaves a reserved identifier with no record, which
// readers report as not found.
func (r *plantRepository) Create(ctx context.Context, plant *entity.Plant) (repository.TxRef, error) {
	marker, err := json.Marshal(creationMarker{Owner: plant.Owner, CreatedAt: plant.CreatedAt})
	if err != nil {
		return "", errors.Wrap(err, "encode creation marker")
	}

	index, _, err := r.store.Append(ctx, plantsCollection, marker)
	if err != nil {
		return "", domainerrors.NewLedgerExecuteError(err, "reserve plant id")
	}

	plant.ID = index

	return r.put(ctx, plant)
}

// FindByID retrieves a single plant record.
func (r *plantRepository) FindByID(ctx context.Context, id uint64) (*entity.Plant, error) {
	raw, err := r.store.Get(ctx, plantKey(id))
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return nil, repository.ErrPlantNotFound
		}

		return nil, domainerrors.NewLedgerExecuteError(err, "read plant")
	}

	var doc plantDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "decode plant document")
	}

	return docToPlant(doc), nil
}

// Update replaces the stored record. The caller holds the per-plant write lock.
func (r *plantRepository) Update(ctx context.Context, plant *entity.Plant) (repository.TxRef, error) {
	return r.put(ctx, plant)
}

// Count returns the number of reserved plant identifiers.
func (r *plantRepository) Count(ctx context.Context) (uint64, error) {
	count, err := r.store.Count(ctx, plantsCollection)
	if err != nil {
		return 0, domainerrors.NewLedgerExecuteError(err, "count plants")
	}

	return count, nil
}

// FindRange retrieves plants with identifiers in [start, start+limit),
// clamped to the registry size. Identifiers reserved but never materialized
// are skipped.
func (r *plantRepository) FindRange(ctx context.Context, start, limit uint64) ([]*entity.Plant, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}

	if start >= count {
		return []*entity.Plant{}, nil
	}

	end := start + limit
	if end > count || end < start {
		end = count
	}

	plants := make([]*entity.Plant, 0, end-start)
	for id := start; id < end; id++ {
		plant, err := r.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrPlantNotFound) {
				continue
			}

			return nil, err
		}
		plants = append(plants, plant)
	}

	return plants, nil
}

func (r *plantRepository) put(ctx context.Context, plant *entity.Plant) (repository.TxRef, error) {
	raw, err := json.Marshal(plantToDoc(plant))
	if err != nil {
		return "", errors.Wrap(err, "encode plant document")
	}

	txRef, err := r.store.Put(ctx, plantKey(plant.ID), raw)
	if err != nil {
		return "", domainerrors.NewLedgerExecuteError(err, "write plant")
	}

	return txRef, nil
}

func plantToDoc(plant *entity.Plant) plantDoc {
	return plantDoc{
		ID:          plant.ID,
		Name:        plant.Content.Name,
		LatinName:   plant.Content.LatinName,
		Composition: plant.Content.Composition,
		Usage:       plant.Content.Usage,
		Dosage:      plant.Content.Dosage,
		Preparation: plant.Content.Preparation,
		SideEffects: plant.Content.SideEffects,
		MediaRef:    plant.Content.MediaRef,
		Owner:       plant.Owner,
		RatingTotal: plant.RatingTotal,
		RatingCount: plant.RatingCount,
		LikeCount:   plant.LikeCount,
		CreatedAt:   plant.CreatedAt,
		UpdatedAt:   plant.UpdatedAt,
	}
}

func docToPlant(doc plantDoc) *entity.Plant {
	return &entity.Plant{
		ID: doc.ID,
		Content: entity.PlantContent{
			Name:        doc.Name,
			LatinName:   doc.LatinName,
			Composition: doc.Composition,
			Usage:       doc.Usage,
			Dosage:      doc.Dosage,
			Preparation: doc.Preparation,
			SideEffects: doc.SideEffects,
			MediaRef:    doc.MediaRef,
		},
		Owner:       doc.Owner,
		RatingTotal: doc.RatingTotal,
		RatingCount: doc.RatingCount,
		LikeCount:   doc.LikeCount,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}
