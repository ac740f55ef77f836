package osm

import (
	"context"
	"errors"
	"roadtrip-planner/internal/domain"
	"strings"
	"sync"
)

type MockPair struct {
	From, To string
	Meters   float64
	Seconds  float64
}

// MockSegmentRouter answers from a fixed table of named pairs and records
// every call in order.
type MockSegmentRouter struct {
	mu    sync.Mutex
	m     map[string]domain.RouteResult
	fail  map[string]error
	calls []string
}

func NewMockSegmentRouter(pairs []MockPair) *MockSegmentRouter {
	m := make(map[string]domain.RouteResult, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = domain.RouteResult{DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
	}
	return &MockSegmentRouter{m: m, fail: map[string]error{}}
}

// FailOn makes the from -> to pair fail with a RoutingError wrapping err.
func (r *MockSegmentRouter) FailOn(from, to string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[from+"|"+to] = err
}

func (r *MockSegmentRouter) Route(ctx context.Context, from, to domain.GeoPoint) (domain.RouteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := from.Name + "|" + to.Name
	r.calls = append(r.calls, key)

	if err, ok := r.fail[key]; ok {
		return domain.RouteResult{}, &domain.RoutingError{From: from.Name, To: to.Name, Err: err}
	}

	res, ok := r.m[key]
	if !ok {
		return domain.RouteResult{}, &domain.RoutingError{From: from.Name, To: to.Name, Err: errors.New("missing pair")}
	}
	res.Path = []domain.LatLng{from.LatLng(), to.LatLng()}
	return res, nil
}

// Calls returns the "from|to" keys in the order they were requested.
func (r *MockSegmentRouter) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// MockGeocoder resolves queries from a fixed table, case-insensitively.
type MockGeocoder struct {
	mu     sync.Mutex
	points map[string]domain.GeoPoint
	calls  int
}

func NewMockGeocoder(points map[string]domain.GeoPoint) *MockGeocoder {
	m := make(map[string]domain.GeoPoint, len(points))
	for q, p := range points {
		m[strings.ToLower(strings.TrimSpace(q))] = p
	}
	return &MockGeocoder{points: m}
}

func (g *MockGeocoder) Resolve(ctx context.Context, query string) (domain.GeoPoint, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++

	p, ok := g.points[strings.ToLower(strings.TrimSpace(query))]
	if !ok {
		return domain.GeoPoint{}, &domain.NotFoundError{Query: query}
	}
	return p, nil
}

func (g *MockGeocoder) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}
