package domain

// Leg is one directed routing request between two consecutive stops.
type Leg struct {
	From     GeoPoint
	To       GeoPoint
	IsReturn bool
}

// RouteResult is the routing service answer for one leg. Path is in (lat, lng) order.
type RouteResult struct {
	DistanceMeters  float64
	DurationSeconds float64
	Path            []LatLng
}

type LegResult struct {
	Leg    Leg
	Result RouteResult
}

// CostInput asks for a cost estimate at RatePerKm for the given vehicle profile.
type CostInput struct {
	RatePerKm    float64
	ProfileLabel string
}

// TripSummary is the aggregated result of one route calculation.
// It is replaced wholesale by the next calculation and never patched.
type TripSummary struct {
	Legs                 []LegResult
	TotalDistanceMeters  float64
	TotalDurationSeconds float64
	EstimatedCost        *float64
	CostProfile          string
}

// BuildLegs pairs consecutive stops forward and, if includeReturn is set,
// pairs consecutive stops of the reversed itinerary as return legs.
func BuildLegs(stops []GeoPoint, includeReturn bool) []Leg {
	if len(stops) < 2 {
		return nil
	}

	n := len(stops) - 1
	capacity := n
	if includeReturn {
		capacity *= 2
	}

	legs := make([]Leg, 0, capacity)
	for i := 0; i < n; i++ {
		legs = append(legs, Leg{From: stops[i], To: stops[i+1]})
	}

	if includeReturn {
		for i := len(stops) - 1; i > 0; i-- {
			legs = append(legs, Leg{From: stops[i], To: stops[i-1], IsReturn: true})
		}
	}

	return legs
}

// EstimateCost returns (km * rate) when a positive rate is supplied.
func EstimateCost(totalDistanceMeters float64, in *CostInput) (float64, bool) {
	if in == nil || !(in.RatePerKm > 0) {
		return 0, false
	}
	return totalDistanceMeters / 1000 * in.RatePerKm, true
}
