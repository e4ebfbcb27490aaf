package repository

import (
	"context"
	"encoding/json"
	"sync"

	"recyclemart/internal/domain/repository"
)

// memoryCollectionStore keeps collections in process memory. Use it for
// development, tests, and single-instance deployments that can lose state.
type memoryCollectionStore struct {
	mu          sync.RWMutex
	collections map[string][]json.RawMessage
}

func NewMemoryCollectionStore() repository.CollectionStore {
	return &memoryCollectionStore{
		collections: make(map[string][]json.RawMessage),
	}
}

func (s *memoryCollectionStore) Load(ctx context.Context, name string) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneRecords(s.collections[name]), nil
}

func (s *memoryCollectionStore) Save(ctx context.Context, name string, records []json.RawMessage) error {
	return s.SaveBatch(ctx, []repository.CollectionWrite{{Name: name, Records: records}})
}

func (s *memoryCollectionStore) SaveBatch(ctx context.Context, writes []repository.CollectionWrite) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range writes {
		s.collections[w.Name] = cloneRecords(w.Records)
	}
	return nil
}

func (s *memoryCollectionStore) Close() error {
	return nil
}

func cloneRecords(records []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, len(records))
	for i, r := range records {
		c := make(json.RawMessage, len(r))
		copy(c, r)
		out[i] = c
	}
	return out
}
