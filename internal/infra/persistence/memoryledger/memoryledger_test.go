package memoryledger

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"herbarium/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGet(t *testing.T) {
	store := New()
	ctx := context.Background()

	txRef, err := store.Put(ctx, "identity/0xabc", []byte(`{"fullName":"A"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, txRef)

	value, err := store.Get(ctx, "identity/0xabc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"fullName":"A"}`), value)
}

func TestStore_GetMissingKey(t *testing.T) {
	store := New()

	_, err := store.Get(context.Background(), "never-written")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestStore_PutReplacesValue(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.Put(ctx, "k", []byte("one"))
	require.NoError(t, err)
	_, err = store.Put(ctx, "k", []byte("two"))
	require.NoError(t, err)

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), value)
}

func TestStore_AppendAssignsConsecutiveIndexes(t *testing.T) {
	store := New()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		index, txRef, err := store.Append(ctx, "plants", []byte{byte(i)})
		require.NoError(t, err)
		assert.Equal(t, uint64(i), index)
		assert.NotEmpty(t, txRef)
	}

	count, err := store.Count(ctx, "plants")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), count)
}

func TestStore_ItemOutOfRange(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, _, err := store.Append(ctx, "provenance", []byte("r0"))
	require.NoError(t, err)

	_, err = store.Item(ctx, "provenance", 1)
	assert.ErrorIs(t, err, repository.ErrIndexOutOfRange)

	_, err = store.Item(ctx, "empty", 0)
	assert.ErrorIs(t, err, repository.ErrIndexOutOfRange)
}

func TestStore_CountEmptyCollection(t *testing.T) {
	store := New()

	count, err := store.Count(context.Background(), "plants")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStore_TxRefsAreUnique(t *testing.T) {
	store := New()
	ctx := context.Background()

	seen := make(map[repository.TxRef]bool)
	for i := 0; i < 10; i++ {
		// Identical payloads still yield distinct references
		txRef, err := store.Put(ctx, "k", []byte("same"))
		require.NoError(t, err)
		assert.False(t, seen[txRef], "duplicate txRef %s", txRef)
		seen[txRef] = true
	}
}

func TestStore_ValueIsolation(t *testing.T) {
	store := New()
	ctx := context.Background()

	original := []byte("immutable")
	_, err := store.Put(ctx, "k", original)
	require.NoError(t, err)

	// Mutating the caller's slice must not affect the stored value
	original[0] = 'X'

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), value)

	// Nor may mutating a read result affect later reads
	value[0] = 'Y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), again)
}

func TestStore_ConcurrentAppends(t *testing.T) {
	store := New()
	ctx := context.Background()

	const writers = 32
	var wg sync.WaitGroup
	indexes := make(chan uint64, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			index, _, err := store.Append(ctx, "plants", []byte(fmt.Sprintf("plant-%d", n)))
			assert.NoError(t, err)
			indexes <- index
		}(i)
	}
	wg.Wait()
	close(indexes)

	seen := make(map[uint64]bool)
	for index := range indexes {
		assert.False(t, seen[index], "index %d assigned twice", index)
		seen[index] = true
	}
	assert.Len(t, seen, writers)

	count, err := store.Count(ctx, "plants")
	require.NoError(t, err)
	assert.Equal(t, uint64(writers), count)
}

func TestStore_CancelledContext(t *testing.T) {
	store := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Put(ctx, "k", []byte("v"))
	assert.Error(t, err)

	_, _, err = store.Append(ctx, "c", []byte("v"))
	assert.Error(t, err)
}
