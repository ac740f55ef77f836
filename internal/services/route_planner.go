package services

import (
	"context"
	"errors"
	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/platform/obs"
	"roadtrip-planner/internal/ports"
)

// LegFunc is called after each leg resolves, in itinerary order.
type LegFunc func(domain.LegResult)

// RoutePlanner turns a stop snapshot into a TripSummary by routing every leg
// sequentially.
//
// Legs are requested strictly one after another (forward legs first, then
// return legs) so incremental rendering stays in itinerary order and the
// first failing leg is always the first failing leg in itinerary order.
type RoutePlanner struct {
	Router ports.SegmentRouter
}

func NewRoutePlanner(router ports.SegmentRouter) *RoutePlanner {
	return &RoutePlanner{Router: router}
}

// Calculate routes the itinerary. It never mutates stops. On the first
// routing failure the remaining legs are skipped and the error is returned
// with no partial summary; onLeg may already have seen earlier legs.
func (p *RoutePlanner) Calculate(
	ctx context.Context,
	stops []domain.GeoPoint,
	includeReturn bool,
	cost *domain.CostInput,
	onLeg LegFunc,
) (_ *domain.TripSummary, err error) {
	if len(stops) < 2 {
		return nil, &domain.InsufficientStopsError{Count: len(stops)}
	}
	if p.Router == nil {
		return nil, errors.New("calculate route: router is nil")
	}

	defer obs.Time(ctx, "planner.Calculate")(&err)

	legs := domain.BuildLegs(stops, includeReturn)

	summary := &domain.TripSummary{
		Legs: make([]domain.LegResult, 0, len(legs)),
	}

	for _, leg := range legs {
		res, err := p.Router.Route(ctx, leg.From, leg.To)
		if err != nil {
			var re *domain.RoutingError
			if errors.As(err, &re) {
				return nil, err
			}
			return nil, &domain.RoutingError{From: leg.From.Name, To: leg.To.Name, Err: err}
		}

		lr := domain.LegResult{Leg: leg, Result: res}
		summary.Legs = append(summary.Legs, lr)
		summary.TotalDistanceMeters += res.DistanceMeters
		summary.TotalDurationSeconds += res.DurationSeconds

		if onLeg != nil {
			onLeg(lr)
		}
	}

	if c, ok := domain.EstimateCost(summary.TotalDistanceMeters, cost); ok {
		summary.EstimatedCost = &c
		summary.CostProfile = domain.ProfileTitle(cost.ProfileLabel)
	}

	return summary, nil
}
