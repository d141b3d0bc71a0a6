package handyman

import (
	"context"
	"encoding/json"
	"time"

	"handyhelp/models"
	"handyhelp/utils"

	"github.com/go-redis/redis/v8"
)

// ProfileCache stores the public list of verified handymen. Every Invalidate
// bumps a generation counter; SetProfiles drops a list read under an older
// generation so a listing cannot overwrite a newer invalidation.
type ProfileCache interface {
	// GetProfiles returns the cached list and whether it was present.
	GetProfiles(ctx context.Context) ([]models.Handyman, bool, error)
	// Generation returns the current generation. Read it before loading the list.
	Generation(ctx context.Context) (int64, error)
	SetProfiles(ctx context.Context, generation int64, profiles []models.Handyman) error
	Invalidate(ctx context.Context) error
}

// RedisProfileCache keeps the list as a JSON blob under a single key, next to
// a counter key holding the generation.
type RedisProfileCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisProfileCache creates a ProfileCache on the given client.
func NewRedisProfileCache(client *redis.Client, ttl time.Duration) *RedisProfileCache {
	return &RedisProfileCache{Client: client, TTL: ttl}
}

func (c *RedisProfileCache) GetProfiles(ctx context.Context) ([]models.Handyman, bool, error) {
	raw, err := c.Client.Get(ctx, utils.ProfilesCacheKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var profiles []models.Handyman
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, false, err
	}
	return profiles, true, nil
}

func (c *RedisProfileCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.Client.Get(ctx, utils.ProfilesGenerationKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func (c *RedisProfileCache) SetProfiles(ctx context.Context, generation int64, profiles []models.Handyman) error {
	raw, err := json.Marshal(profiles)
	if err != nil {
		return err
	}
	err = c.Client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, utils.ProfilesGenerationKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, utils.ProfilesCacheKey, raw, c.TTL)
			return nil
		})
		return err
	}, utils.ProfilesGenerationKey)
	if err == redis.TxFailedErr {
		// Invalidated while writing.
		return nil
	}
	return err
}

func (c *RedisProfileCache) Invalidate(ctx context.Context) error {
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, utils.ProfilesGenerationKey)
		pipe.Del(ctx, utils.ProfilesCacheKey)
		return nil
	})
	return err
}
