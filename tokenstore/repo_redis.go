package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "taskflow:slot:"

// RedisRepo shares token slots between server instances
type RedisRepo struct {
	client redis.UniversalClient
}

func NewRedisRepo(client redis.UniversalClient) *RedisRepo {
	return &RedisRepo{client: client}
}

func slotKey(slotID string) string {
	return redisKeyPrefix + slotID
}

func (r *RedisRepo) Upsert(ctx context.Context, slotID, token string, ttl time.Duration) error {
	if slotID == "" {
		return fmt.Errorf("slotID is required")
	}
	if err := r.client.Set(ctx, slotKey(slotID), token, ttl).Err(); err != nil {
		return fmt.Errorf("redis set slot: %w", err)
	}
	return nil
}

func (r *RedisRepo) Get(ctx context.Context, slotID string) (string, error) {
	if slotID == "" {
		return "", fmt.Errorf("slotID is required")
	}
	token, err := r.client.Get(ctx, slotKey(slotID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSlotNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get slot: %w", err)
	}
	return token, nil
}

func (r *RedisRepo) Delete(ctx context.Context, slotID string) error {
	if slotID == "" {
		return fmt.Errorf("slotID is required")
	}
	if err := r.client.Del(ctx, slotKey(slotID)).Err(); err != nil {
		return fmt.Errorf("redis delete slot: %w", err)
	}
	return nil
}
