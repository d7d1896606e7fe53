// Package memoryledger provides an in-process implementation of the ledger
// substrate. It is the default driver for development and tests.
package memoryledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync"
	"sync/atomic"

	"herbarium/internal/domain/repository"

	"github.com/pkg/errors"
)

// Store keeps keyed values and ordered collections in memory. Every write
// returns a transaction reference derived from the write's position and
// payload, mirroring what a real ledger backend would hand back.
type Store struct {
	mu          sync.RWMutex
	entries     map[string][]byte
	collections map[string][][]byte
	writeSeq    atomic.Uint64
}

// New creates an empty in-memory ledger store.
func New() *Store {
	return &Store{
		entries:     make(map[string][]byte),
		collections: make(map[string][][]byte),
	}
}

// Put writes value under key, replacing any prior value.
func (s *Store) Put(ctx context.Context, key string, value []byte) (repository.TxRef, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, "put cancelled")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = cloneBytes(value)

	return s.txRef("put", key, value), nil
}

// Get reads the current value under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "get cancelled")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return nil, repository.ErrKeyNotFound
	}

	return cloneBytes(value), nil
}

// Append adds value to the end of the named collection and returns its
// zero-based index. Index assignment happens under the write lock, so
// concurrent appends receive distinct consecutive indexes.
func (s *Store) Append(ctx context.Context, collection string, value []byte) (uint64, repository.TxRef, error) {
	if err := ctx.Err(); err != nil {
		return 0, "", errors.Wrap(err, "append cancelled")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.collections[collection]
	index := uint64(len(items))
	s.collections[collection] = append(items, cloneBytes(value))

	return index, s.txRef("append", collection+"/"+strconv.FormatUint(index, 10), value), nil
}

// Item reads the value at index in the named collection.
func (s *Store) Item(ctx context.Context, collection string, index uint64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "item cancelled")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.collections[collection]
	if index >= uint64(len(items)) {
		return nil, repository.ErrIndexOutOfRange
	}

	return cloneBytes(items[index]), nil
}

// Count returns the number of values appended to the named collection.
func (s *Store) Count(ctx context.Context, collection string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.Wrap(err, "count cancelled")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return uint64(len(s.collections[collection])), nil
}

func (s *Store) txRef(op, location string, value []byte) repository.TxRef {
	seq := s.writeSeq.Add(1)

	h := sha256.New()
	h.Write([]byte(op))
	h.Write([]byte{0})
	h.Write([]byte(location))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatUint(seq, 10)))
	h.Write([]byte{0})
	h.Write(value)

	return repository.TxRef("0x" + hex.EncodeToString(h.Sum(nil)))
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)

	return out
}
