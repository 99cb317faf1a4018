package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"skill-evolve-service/internal/domain"
)

// ProgressRepository stores one save record per slot as a plain Redis string.
// Records never expire.
type ProgressRepository struct {
	client *redis.Client
}

func NewProgressRepository(client *redis.Client) *ProgressRepository {
	return &ProgressRepository{client: client}
}

func (r *ProgressRepository) Get(ctx context.Context, slot string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrProgressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", slot, err)
	}
	return data, nil
}

func (r *ProgressRepository) Put(ctx context.Context, slot string, data []byte) error {
	return r.client.Set(ctx, r.key(slot), data, 0).Err()
}

func (r *ProgressRepository) Delete(ctx context.Context, slot string) error {
	return r.client.Del(ctx, r.key(slot)).Err()
}

func (r *ProgressRepository) key(slot string) string {
	return "skillevolve:save:" + slot
}
