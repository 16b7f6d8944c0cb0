package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSlotRepository keeps each slot as a plain Redis string without expiry
type RedisSlotRepository struct {
	client *redis.Client
}

// NewRedisSlotRepository creates a new RedisSlotRepository
func NewRedisSlotRepository(client *redis.Client) *RedisSlotRepository {
	return &RedisSlotRepository{client: client}
}

// Ensure RedisSlotRepository implements SlotRepositoryInterface
var _ SlotRepositoryInterface = (*RedisSlotRepository)(nil)

// Load reads the key
func (r *RedisSlotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to load slot from redis: %w", err)
	}
	return data, nil
}

// Save overwrites the key
func (r *RedisSlotRepository) Save(ctx context.Context, key string, payload []byte) error {
	if err := r.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save slot to redis: %w", err)
	}
	return nil
}
