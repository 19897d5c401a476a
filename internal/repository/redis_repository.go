package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"kenotrix/backend/internal/model"
)

type redisRepository struct {
	rdb *redis.Client
	key string
}

// NewRedisRepository stores the snapshot as a plain string value under key, without expiry.
func NewRedisRepository(rdb *redis.Client, key string) ThreadRepository {
	return &redisRepository{rdb: rdb, key: key}
}

func (r *redisRepository) Load(ctx context.Context) ([]model.Thread, error) {
	data, err := r.rdb.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.Thread{}, nil
		}
		return nil, fmt.Errorf("could not read snapshot from redis: %w", err)
	}
	return decodeSnapshot(data)
}

func (r *redisRepository) Save(ctx context.Context, threads []model.Thread) error {
	data, err := encodeSnapshot(threads)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("could not write snapshot to redis: %w", err)
	}
	return nil
}
