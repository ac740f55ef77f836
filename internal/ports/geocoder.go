package ports

import (
	"context"
	"roadtrip-planner/internal/domain"
)

// Contract for turning free text into a named coordinate.
type Geocoder interface {
	// Return the best match for query, or *domain.NotFoundError when there is none.
	Resolve(ctx context.Context, query string) (domain.GeoPoint, error)
}

// Persistent query -> GeoPoint mapping consulted before the geocoder.
type GeocodeCache interface {
	// Return the cached point and whether it was present.
	Get(ctx context.Context, query string) (domain.GeoPoint, bool, error)
	Put(ctx context.Context, query string, p domain.GeoPoint) error
}
