package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	myErr "mazdady-market/internal/types/errors"
)

// keyPrefix namespaces every blob so the marketplace can share a Redis
// database with the session store without collisions.
const keyPrefix = "mazdady:"

type RedisStorage struct {
	RedisClient *redis.Client
	Logger      *zap.SugaredLogger
}

func NewRedisStorage(redisClient *redis.Client, logger *zap.SugaredLogger) *RedisStorage {
	return &RedisStorage{
		RedisClient: redisClient,
		Logger:      logger,
	}
}

func (rs *RedisStorage) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		rs.Logger.Errorf("Failed to marshal blob for key %s: %v", key, err)
		return err
	}

	if err := rs.RedisClient.Set(ctx, keyPrefix+key, data, 0).Err(); err != nil {
		rs.Logger.Errorf("Failed to save blob %s to Redis: %v", key, err)
		return myErr.ErrStorageInternal
	}

	return nil
}

func (rs *RedisStorage) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := rs.RedisClient.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return myErr.ErrNotFound
		}
		rs.Logger.Errorf("Failed to get blob %s from Redis: %v", key, err)
		return myErr.ErrStorageInternal
	}

	if err := json.Unmarshal(data, dest); err != nil {
		rs.Logger.Errorf("Failed to decode blob %s: %v", key, err)
		return err
	}

	return nil
}

func (rs *RedisStorage) Remove(ctx context.Context, key string) error {
	if err := rs.RedisClient.Del(ctx, keyPrefix+key).Err(); err != nil {
		rs.Logger.Errorf("Failed to remove blob %s from Redis: %v", key, err)
		return myErr.ErrStorageInternal
	}

	return nil
}
