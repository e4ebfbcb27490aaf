package repository

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recyclemart/internal/domain/repository"
)

func raw(values ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(values))
	for i, v := range values {
		out[i] = json.RawMessage(v)
	}
	return out
}

func storesUnderTest(t *testing.T) map[string]repository.CollectionStore {
	t.Helper()

	sqlite, err := NewSQLiteCollectionStore(filepath.Join(t.TempDir(), "collections.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	mr := miniredis.RunT(t)
	redisStore, err := NewRedisCollectionStore(RedisStoreConfig{Addr: mr.Addr(), KeyPrefix: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { redisStore.Close() })

	return map[string]repository.CollectionStore{
		"memory": NewMemoryCollectionStore(),
		"sqlite": sqlite,
		"redis":  redisStore,
	}
}

func TestCollectionStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			records, err := store.Load(ctx, "queues/nobody")
			require.NoError(t, err)
			assert.NotNil(t, records)
			assert.Empty(t, records)

			require.NoError(t, store.Save(ctx, "queues/u1", raw(`{"item_id":"a"}`, `{"item_id":"b"}`)))
			records, err = store.Load(ctx, "queues/u1")
			require.NoError(t, err)
			require.Len(t, records, 2)
			assert.JSONEq(t, `{"item_id":"a"}`, string(records[0]))
			assert.JSONEq(t, `{"item_id":"b"}`, string(records[1]))

			// Save replaces rather than appends.
			require.NoError(t, store.Save(ctx, "queues/u1", raw(`{"item_id":"c"}`)))
			records, err = store.Load(ctx, "queues/u1")
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.JSONEq(t, `{"item_id":"c"}`, string(records[0]))

			require.NoError(t, store.SaveBatch(ctx, []repository.CollectionWrite{
				{Name: repository.CollectionRequestsName, Records: raw(`{"id":"r1"}`)},
				{Name: "queues/u1", Records: nil},
			}))

			requests, err := store.Load(ctx, repository.CollectionRequestsName)
			require.NoError(t, err)
			assert.Len(t, requests, 1)

			records, err = store.Load(ctx, "queues/u1")
			require.NoError(t, err)
			assert.Empty(t, records)
		})
	}
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCollectionStore()

	written := raw(`{"n":1}`)
	require.NoError(t, store.Save(ctx, "c", written))
	written[0][1] = 'X'

	loaded, err := store.Load(ctx, "c")
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(loaded[0]))

	loaded[0][1] = 'Y'
	again, err := store.Load(ctx, "c")
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(again[0]))
}

func TestMemoryStoreHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryCollectionStore()
	_, err := store.Load(ctx, "c")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Save(ctx, "c", nil), context.Canceled)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "collections.db")

	store, err := NewSQLiteCollectionStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, repository.RatingsName, raw(`{"score":5}`)))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteCollectionStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.Load(ctx, repository.RatingsName)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.JSONEq(t, `{"score":5}`, string(records[0]))
}

func TestRedisStoreKeysHaveNoExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisCollectionStore(RedisStoreConfig{Addr: mr.Addr(), KeyPrefix: "rm"})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(context.Background(), "ratings", raw(`{"score":4}`)))

	assert.True(t, mr.Exists("rm:collection:ratings"))
	assert.Equal(t, time.Duration(0), mr.TTL("rm:collection:ratings"))
}
