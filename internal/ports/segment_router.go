package ports

import (
	"context"
	"roadtrip-planner/internal/domain"
)

// Contract for obtaining a driving path between two points.
// One external call per invocation; implementations must not cache.
type SegmentRouter interface {
	Route(ctx context.Context, from, to domain.GeoPoint) (domain.RouteResult, error)
}
