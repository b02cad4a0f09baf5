package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "inventorypro:snapshot:"

// RedisStore keeps snapshots as plain string values, one per key.
type RedisStore struct {
	client *redis.Client
}

func ConnectRedis(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (rs *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	doc, err := rs.client.Get(ctx, snapshotKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return doc, nil
}

func (rs *RedisStore) Save(ctx context.Context, key string, doc []byte) error {
	if err := rs.client.Set(ctx, snapshotKeyPrefix+key, doc, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
