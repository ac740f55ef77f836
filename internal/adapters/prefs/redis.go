package prefs

import (
	"context"
	"errors"
	"fmt"
	"roadtrip-planner/internal/domain"

	"github.com/redis/go-redis/v9"
)

const DefaultThemeKey = "roadtrip:prefs:theme"

// RedisStore persists the theme preference under a single key with no expiry.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultThemeKey
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Theme(ctx context.Context) (domain.Theme, bool, error) {
	v, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get theme preference: %w", err)
	}

	theme, err := domain.ParseTheme(v)
	if err != nil {
		return "", false, fmt.Errorf("get theme preference: %w", err)
	}
	return theme, true, nil
}

func (r *RedisStore) SetTheme(ctx context.Context, theme domain.Theme) error {
	if err := r.client.Set(ctx, r.key, string(theme), 0).Err(); err != nil {
		return fmt.Errorf("set theme preference: %w", err)
	}
	return nil
}
