package ledger

import (
	"context"
	"encoding/json"

	"herbarium/internal/domain/entity"
	domainerrors "herbarium/internal/domain/errors"
	"herbarium/internal/domain/repository"
	"herbarium/internal/errors"
)

// provenanceDoc is the JSON form of one record in the global history.
type provenanceDoc struct {
	PlantID   uint64 `json:"plantId"`
	Actor     string `json:"actor"`
	TxRef     string `json:"txRef"`
	Timestamp int64  `json:"timestamp"`
}

type provenanceRepository struct {
	store repository.LedgerStore
}

// NewProvenanceRepository creates a ledger-backed provenance repository.
func NewProvenanceRepository(store repository.LedgerStore) repository.ProvenanceRepository {
	return &provenanceRepository{store: store}
}

// Append adds a record to the global history. The assigned identifier is the
// record's position in the collection, strictly increasing across all plants.
func (r *provenanceRepository) Append(ctx context.Context, record *entity.ProvenanceRecord) (repository.TxRef, error) {
	raw, err := json.Marshal(provenanceDoc{
		PlantID:   record.PlantID,
		Actor:     record.Actor,
		TxRef:     record.TxRef,
		Timestamp: record.Timestamp,
	})
	if err != nil {
		return "", errors.Wrap(err, "encode provenance document")
	}

	index, txRef, err := r.store.Append(ctx, provenanceCollection, raw)
	if err != nil {
		return "", domainerrors.NewLedgerExecuteError(err, "append provenance")
	}

	record.RecordID = index

	return txRef, nil
}

// FindByPlant scans the full history and returns the plant's records in
// append order.
func (r *provenanceRepository) FindByPlant(ctx context.Context, plantID uint64) ([]entity.ProvenanceRecord, error) {
	count, err := r.store.Count(ctx, provenanceCollection)
	if err != nil {
		return nil, domainerrors.NewLedgerExecuteError(err, "count provenance")
	}

	var records []entity.ProvenanceRecord
	for index := uint64(0); index < count; index++ {
		raw, err := r.store.Item(ctx, provenanceCollection, index)
		if err != nil {
			return nil, domainerrors.NewLedgerExecuteError(err, "read provenance")
		}

		var doc provenanceDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, errors.Wrap(err, "decode provenance document")
		}

		if doc.PlantID != plantID {
			continue
		}

		records = append(records, entity.ProvenanceRecord{
			RecordID:  index,
			PlantID:   doc.PlantID,
			Actor:     doc.Actor,
			TxRef:     doc.TxRef,
			Timestamp: doc.Timestamp,
		})
	}

	return records, nil
}
