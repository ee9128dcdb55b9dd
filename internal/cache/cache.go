package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const stagePrefix = "stage:"

type Cache struct {
	Client *redis.Client
}

func New(redisURL string) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Cache{Client: client}, nil
}

func (c *Cache) Close() error {
	return c.Client.Close()
}

// SetStage records the last stage seen for a region.
func (c *Cache) SetStage(ctx context.Context, region, stage string) error {
	return c.Client.Set(ctx, stagePrefix+region, stage, 0).Err()
}

// GetStage returns the last stage seen for a region. ok is false if none was recorded.
func (c *Cache) GetStage(ctx context.Context, region string) (stage string, ok bool, err error) {
	val, err := c.Client.Get(ctx, stagePrefix+region).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}
