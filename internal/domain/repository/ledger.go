// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by LedgerStore.Get when no value exists for the key.
var ErrKeyNotFound = errors.New("ledger key not found")

// ErrIndexOutOfRange is returned by LedgerStore.Item when the index is past
// the end of the collection.
var ErrIndexOutOfRange = errors.New("ledger index out of range")

// TxRef is the opaque transaction reference a ledger store returns for every
// successful write. It is recorded in provenance entries and surfaced to
// callers, never interpreted.
type TxRef string

// LedgerStore is the append-only ordered key-value substrate every record in
// the system lives on. Each call is individually atomic; the store offers no
// atomicity across calls, so multi-write operations must be sequenced by the
// caller and any partial-failure window documented at that call site.
type LedgerStore interface {
	// Put writes value under key, replacing any prior value. The prior value
	// is not recoverable through this interface.
	Put(ctx context.Context, key string, value []byte) (TxRef, error)

	// Get reads the current value under key. Returns ErrKeyNotFound when the
	// key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Append adds value to the end of the named ordered collection and
	// returns its zero-based index. Index assignment is atomic: concurrent
	// appends receive distinct consecutive indexes.
	Append(ctx context.Context, collection string, value []byte) (uint64, TxRef, error)

	// Item reads the value at index in the named collection. Returns
	// ErrIndexOutOfRange when index >= Count.
	Item(ctx context.Context, collection string, index uint64) ([]byte, error)

	// Count returns the number of values appended to the named collection.
	Count(ctx context.Context, collection string) (uint64, error)
}
