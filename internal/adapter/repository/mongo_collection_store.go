package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"recyclemart/internal/domain/repository"
	"recyclemart/pkg/errors"
	"recyclemart/pkg/logger"
)

// mongoCollectionDoc keeps one collection per document, keyed by name.
type mongoCollectionDoc struct {
	Name      string    `bson:"_id"`
	Records   []string  `bson:"records"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoCollectionStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoCollectionStore connects to uri. SaveBatch runs in a multi-document
// transaction, so the server must be a replica set or a sharded cluster.
func NewMongoCollectionStore(uri, database, collection string) (repository.CollectionStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info("[MongoCollectionStore] Connected to %s/%s", database, collection)
	return &mongoCollectionStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func (s *mongoCollectionStore) Load(ctx context.Context, name string) ([]json.RawMessage, error) {
	var d mongoCollectionDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, errors.Internal("Failed to load collection "+name, err)
	}

	records := make([]json.RawMessage, 0, len(d.Records))
	for _, r := range d.Records {
		records = append(records, json.RawMessage(r))
	}
	return records, nil
}

func (s *mongoCollectionStore) Save(ctx context.Context, name string, records []json.RawMessage) error {
	return s.SaveBatch(ctx, []repository.CollectionWrite{{Name: name, Records: records}})
}

func (s *mongoCollectionStore) SaveBatch(ctx context.Context, writes []repository.CollectionWrite) error {
	session, err := s.client.StartSession()
	if err != nil {
		return errors.Internal("Failed to start MongoDB session", err)
	}
	defer session.EndSession(ctx)

	now := time.Now()
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, w := range writes {
			d := mongoCollectionDoc{
				Name:      w.Name,
				Records:   make([]string, 0, len(w.Records)),
				UpdatedAt: now,
			}
			for _, r := range w.Records {
				d.Records = append(d.Records, string(r))
			}

			opts := options.Replace().SetUpsert(true)
			if _, err := s.collection.ReplaceOne(sc, bson.M{"_id": w.Name}, d, opts); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return errors.Internal("Failed to save collections", err)
	}
	return nil
}

func (s *mongoCollectionStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
