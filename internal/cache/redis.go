package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aadcode/greenmile-integration/internal/domain"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) Get(ctx context.Context, variantID string) (*domain.Variant, error) {
	data, err := r.client.Get(ctx, cacheKey(variantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var v domain.Variant
	if err2 := json.Unmarshal(data, &v); err2 != nil {
		return nil, fmt.Errorf("unmarshal variant failed: %w", err2)
	}
	return &v, nil
}

func (r *RedisCache) Set(ctx context.Context, variantID string, v *domain.Variant) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal variant failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	if err := r.client.Set(ctx, cacheKey(variantID), payload, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, variantID string) error {
	if err := r.client.Del(ctx, cacheKey(variantID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(variantID string) string {
	return fmt.Sprintf("variant:%s", variantID)
}
