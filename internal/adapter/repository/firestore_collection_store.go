package repository

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"recyclemart/internal/domain/repository"
	"recyclemart/pkg/errors"
	"recyclemart/pkg/logger"
)

// firestoreCollectionDoc stores one collection as one document. Records are
// kept as JSON strings so their order and shape survive untouched.
type firestoreCollectionDoc struct {
	Name      string    `firestore:"name"`
	Records   []string  `firestore:"records"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

type firestoreCollectionStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreCollectionStore(ctx context.Context, projectID, collection string, opts ...option.ClientOption) (repository.CollectionStore, error) {
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, err
	}

	logger.Info("[FirestoreCollectionStore] Initialized - project:%s, collection:%s", projectID, collection)
	return &firestoreCollectionStore{
		client:     client,
		collection: collection,
	}, nil
}

// doc maps a collection name to a document. Names such as "queues/<user>"
// contain slashes, which Firestore reserves as path separators.
func (s *firestoreCollectionStore) doc(name string) *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(url.PathEscape(name))
}

func (s *firestoreCollectionStore) Load(ctx context.Context, name string) ([]json.RawMessage, error) {
	snap, err := s.doc(name).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return []json.RawMessage{}, nil
		}
		return nil, errors.Internal("Failed to load collection "+name, err)
	}

	var d firestoreCollectionDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, errors.Internal("Failed to parse collection "+name, err)
	}

	records := make([]json.RawMessage, 0, len(d.Records))
	for _, r := range d.Records {
		records = append(records, json.RawMessage(r))
	}
	return records, nil
}

func (s *firestoreCollectionStore) Save(ctx context.Context, name string, records []json.RawMessage) error {
	return s.SaveBatch(ctx, []repository.CollectionWrite{{Name: name, Records: records}})
}

func (s *firestoreCollectionStore) SaveBatch(ctx context.Context, writes []repository.CollectionWrite) error {
	now := time.Now()
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, w := range writes {
			d := firestoreCollectionDoc{
				Name:      w.Name,
				Records:   make([]string, 0, len(w.Records)),
				UpdatedAt: now,
			}
			for _, r := range w.Records {
				d.Records = append(d.Records, string(r))
			}
			if err := tx.Set(s.doc(w.Name), d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Internal("Failed to save collections", err)
	}
	return nil
}

func (s *firestoreCollectionStore) Close() error {
	return s.client.Close()
}
