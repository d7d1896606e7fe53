package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"herbarium/internal/domain/repository"
	"herbarium/internal/errors"
	"herbarium/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ledgerStore implements repository.LedgerStore on PostgreSQL. Keyed entries
// live in ledger_entries; ordered collections live in ledger_items with a
// counter row per collection that is locked during append.
type ledgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates a postgres-backed ledger store.
func NewLedgerStore(db *gorm.DB) repository.LedgerStore {
	return &ledgerStore{db: db}
}

// Put writes value under key, replacing any prior value.
func (s *ledgerStore) Put(ctx context.Context, key string, value []byte) (repository.TxRef, error) {
	txRef := newTxRef("put", key, value)

	entry := model.LedgerEntryModel{
		Key:       key,
		Value:     value,
		TxRef:     string(txRef),
		UpdatedAt: time.Now(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "tx_ref", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return "", errors.Wrap(err, "put ledger entry")
	}

	return txRef, nil
}

// Get reads the current value under key.
func (s *ledgerStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry model.LedgerEntryModel
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrKeyNotFound
		}

		return nil, errors.Wrap(err, "get ledger entry")
	}

	return entry.Value, nil
}

// Append adds value to the end of the named collection. The collection's
// counter row is locked for the duration of the transaction, so concurrent
// appends receive distinct consecutive indexes.
func (s *ledgerStore) Append(ctx context.Context, collection string, value []byte) (uint64, repository.TxRef, error) {
	var index uint64
	var txRef repository.TxRef

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Ensure the counter row exists before locking it.
		if err := tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.LedgerCollectionModel{Collection: collection, UpdatedAt: time.Now()}).Error; err != nil {
			return errors.Wrap(err, "ensure collection counter")
		}

		var counter model.LedgerCollectionModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ?", collection).
			First(&counter).Error; err != nil {
			return errors.Wrap(err, "lock collection counter")
		}

		index = counter.Count
		txRef = newTxRef("append", collection+"/"+strconv.FormatUint(index, 10), value)

		item := model.LedgerItemModel{
			Collection: collection,
			Idx:        index,
			Value:      value,
			TxRef:      string(txRef),
			CreatedAt:  time.Now(),
		}
		if err := tx.Create(&item).Error; err != nil {
			if isUniqueConstraintViolation(err) {
				return errors.Wrap(err, "concurrent append claimed the index")
			}

			return errors.Wrap(err, "append ledger item")
		}

		return errors.Wrap(tx.Model(&model.LedgerCollectionModel{}).
			Where("collection = ?", collection).
			Updates(map[string]any{"count": index + 1, "updated_at": time.Now()}).Error,
			"advance collection counter")
	})
	if err != nil {
		return 0, "", err
	}

	return index, txRef, nil
}

// Item reads the value at index in the named collection.
func (s *ledgerStore) Item(ctx context.Context, collection string, index uint64) ([]byte, error) {
	var item model.LedgerItemModel
	err := s.db.WithContext(ctx).
		Where("collection = ? AND idx = ?", collection, index).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIndexOutOfRange
		}

		return nil, errors.Wrap(err, "get ledger item")
	}

	return item.Value, nil
}

// Count returns the number of values appended to the named collection.
func (s *ledgerStore) Count(ctx context.Context, collection string) (uint64, error) {
	var counter model.LedgerCollectionModel
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, errors.Wrap(err, "count ledger collection")
	}

	return counter.Count, nil
}

// newTxRef derives an opaque reference for a successful write. A random
// component keeps references unique even for identical payloads.
func newTxRef(op, location string, value []byte) repository.TxRef {
	h := sha256.New()
	h.Write([]byte(op))
	h.Write([]byte{0})
	h.Write([]byte(location))
	h.Write([]byte{0})
	h.Write([]byte(uuid.NewString()))
	h.Write([]byte{0})
	h.Write(value)

	return repository.TxRef("0x" + hex.EncodeToString(h.Sum(nil)))
}
