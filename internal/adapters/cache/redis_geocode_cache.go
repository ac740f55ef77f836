package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

const geocodeKeyPrefix = "geocode:"

type cachedPoint struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// RedisGeocodeCache stores resolved stops as JSON with a TTL.
type RedisGeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client, ttl: ttl}
}

func (r *RedisGeocodeCache) Get(ctx context.Context, query string) (_ domain.GeoPoint, _ bool, err error) {
	defer obs.Time(ctx, "geocode.redis.Get")(&err)

	key := NormalizeQuery(query)
	if key == "" {
		return domain.GeoPoint{}, false, errors.New("get geocode cache: query must not be empty")
	}

	data, err := r.client.Get(ctx, geocodeKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.GeoPoint{}, false, nil
	}
	if err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("get geocode cache %q: %w", key, err)
	}

	var cp cachedPoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("decode geocode cache %q: %w", key, err)
	}

	return domain.GeoPoint{Name: cp.Name, Lat: cp.Lat, Lng: cp.Lng}, true, nil
}

func (r *RedisGeocodeCache) Put(ctx context.Context, query string, p domain.GeoPoint) error {
	key := NormalizeQuery(query)
	if key == "" {
		return errors.New("insert geocode cache: empty query key")
	}

	data, err := json.Marshal(cachedPoint{Name: p.Name, Lat: p.Lat, Lng: p.Lng})
	if err != nil {
		return fmt.Errorf("encode geocode cache %q: %w", key, err)
	}

	if err := r.client.Set(ctx, geocodeKeyPrefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("insert geocode cache %q: %w", key, err)
	}
	return nil
}
