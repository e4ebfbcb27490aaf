package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"recyclemart/internal/domain/repository"
	"recyclemart/pkg/errors"
	"recyclemart/pkg/logger"
)

type RedisStoreConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// redisCollectionStore keeps each collection under one string key with no
// expiry. Batches run inside MULTI/EXEC.
type redisCollectionStore struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisCollectionStore(cfg RedisStoreConfig) (repository.CollectionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		MinIdleConns: 5,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return newRedisCollectionStore(client, cfg.KeyPrefix), nil
}

func newRedisCollectionStore(client *redis.Client, keyPrefix string) *redisCollectionStore {
	if keyPrefix == "" {
		keyPrefix = "recyclemart"
	}
	logger.Info("[RedisCollectionStore] Started - prefix:%s", keyPrefix)
	return &redisCollectionStore{client: client, keyPrefix: keyPrefix}
}

func (s *redisCollectionStore) key(name string) string {
	return s.keyPrefix + ":collection:" + name
}

func (s *redisCollectionStore) Load(ctx context.Context, name string) ([]json.RawMessage, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err == redis.Nil {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, errors.Internal("Failed to load collection "+name, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Internal("Failed to parse collection "+name, err)
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, nil
}

func (s *redisCollectionStore) Save(ctx context.Context, name string, records []json.RawMessage) error {
	return s.SaveBatch(ctx, []repository.CollectionWrite{{Name: name, Records: records}})
}

func (s *redisCollectionStore) SaveBatch(ctx context.Context, writes []repository.CollectionWrite) error {
	payloads := make(map[string]string, len(writes))
	for _, w := range writes {
		payload, err := encodeRecords(w.Records)
		if err != nil {
			return errors.Internal("Failed to encode collection "+w.Name, err)
		}
		payloads[s.key(w.Name)] = payload
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, payload := range payloads {
			pipe.Set(ctx, key, payload, 0)
		}
		return nil
	})
	if err != nil {
		return errors.Internal("Failed to save collections", err)
	}
	return nil
}

func (s *redisCollectionStore) Close() error {
	return s.client.Close()
}
