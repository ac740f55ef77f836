package cache

import (
	"context"
	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/ports"

	"go.uber.org/zap"
)

// Metrics receives cache hits. May be nil.
type Metrics interface {
	GeocodeObserved(outcome string)
}

// Geocoder consults a GeocodeCache before delegating to the wrapped geocoder.
// Cache failures degrade to a direct lookup; misses are never cached.
type Geocoder struct {
	next    ports.Geocoder
	cache   ports.GeocodeCache
	log     *zap.Logger
	metrics Metrics
}

func NewGeocoder(next ports.Geocoder, cache ports.GeocodeCache, log *zap.Logger, metrics Metrics) *Geocoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Geocoder{next: next, cache: cache, log: log, metrics: metrics}
}

func (g *Geocoder) Resolve(ctx context.Context, query string) (domain.GeoPoint, error) {
	if NormalizeQuery(query) == "" {
		return g.next.Resolve(ctx, query)
	}

	p, ok, err := g.cache.Get(ctx, query)
	if err != nil {
		g.log.Warn("geocode cache read failed", zap.String("query", query), zap.Error(err))
	} else if ok {
		if g.metrics != nil {
			g.metrics.GeocodeObserved("cache_hit")
		}
		return p, nil
	}

	p, err = g.next.Resolve(ctx, query)
	if err != nil {
		return domain.GeoPoint{}, err
	}

	if err := g.cache.Put(ctx, query, p); err != nil {
		g.log.Warn("geocode cache write failed", zap.String("query", query), zap.Error(err))
	}

	return p, nil
}
