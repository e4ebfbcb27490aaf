package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"recyclemart/internal/domain/entity"
)

// CollectionStore is the persistence collaborator: named, ordered lists of
// records that are read whole and replaced whole. Implementations must return
// exactly what was last written, with no expiry.
type CollectionStore interface {
	// Load returns the records of a collection in stored order. A collection
	// that was never written loads as an empty list.
	Load(ctx context.Context, name string) ([]json.RawMessage, error)

	// Save replaces the collection with records.
	Save(ctx context.Context, name string, records []json.RawMessage) error

	// SaveBatch replaces several collections atomically: either every write is
	// visible afterwards or none is.
	SaveBatch(ctx context.Context, writes []CollectionWrite) error

	Close() error
}

type CollectionWrite struct {
	Name    string
	Records []json.RawMessage
}

const (
	queueCollectionPrefix   = "queues/"
	CollectionRequestsName  = "collection_requests"
	RatingsName             = "ratings"
	CollectorAggregatesName = "collector_aggregates"
)

// Collection binds a collection name to its record type.
type Collection[T any] struct {
	Name string
}

func QueueCollection(userID string) Collection[entity.QueueEntry] {
	return Collection[entity.QueueEntry]{Name: queueCollectionPrefix + userID}
}

func RequestCollection() Collection[entity.CollectionRequest] {
	return Collection[entity.CollectionRequest]{Name: CollectionRequestsName}
}

func RatingCollection() Collection[entity.Rating] {
	return Collection[entity.Rating]{Name: RatingsName}
}

func AggregateCollection() Collection[entity.CollectorAggregate] {
	return Collection[entity.CollectorAggregate]{Name: CollectorAggregatesName}
}

// Load decodes every record of the collection.
func (c Collection[T]) Load(ctx context.Context, store CollectionStore) ([]T, error) {
	raw, err := store.Load(ctx, c.Name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, fmt.Errorf("decode %s[%d]: %w", c.Name, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Write encodes records into a write for SaveBatch.
func (c Collection[T]) Write(records []T) (CollectionWrite, error) {
	raw := make([]json.RawMessage, 0, len(records))
	for i, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return CollectionWrite{}, fmt.Errorf("encode %s[%d]: %w", c.Name, i, err)
		}
		raw = append(raw, b)
	}
	return CollectionWrite{Name: c.Name, Records: raw}, nil
}

func (c Collection[T]) Save(ctx context.Context, store CollectionStore, records []T) error {
	w, err := c.Write(records)
	if err != nil {
		return err
	}
	return store.Save(ctx, w.Name, w.Records)
}
