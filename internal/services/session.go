package services

import (
	"context"
	"errors"
	"fmt"
	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/ports"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBusy is returned when a calculation is requested while another is in flight.
var ErrBusy = errors.New("a route calculation is already in progress")

// SessionMetrics receives session level observations. May be nil.
type SessionMetrics interface {
	CalculationObserved(outcome string, d time.Duration)
	StopsSet(n int)
}

type SessionOptions struct {
	Geocoder ports.Geocoder
	Router   ports.SegmentRouter
	Surface  ports.MapSurface
	Prefs    ports.PreferenceStore
	Events   ports.EventPublisher
	Metrics  SessionMetrics
	Logger   *zap.Logger

	// Draw each leg as soon as it resolves. When false the route is drawn
	// once after every leg succeeded, so a failed calculation leaves no
	// partial polylines behind.
	Incremental  bool
	DefaultTheme domain.Theme
}

type CalculateRequest struct {
	IncludeReturn bool
	Cost          *domain.CostInput
}

type StopView struct {
	Index    int
	Label    string
	Point    domain.GeoPoint
	Endpoint bool
}

// SessionView is a consistent snapshot of everything the UI renders.
type SessionView struct {
	ID             string
	Stops          []StopView
	Anchored       bool
	Subtitle       string
	Theme          domain.Theme
	Busy           bool
	SummaryVisible bool
	Summary        *domain.TripSummary
}

// Session is the top level controller for one planning session. It owns the
// Stop List, the latest TripSummary, the theme and the busy latch, and turns
// every Stop List change into a map resync.
type Session struct {
	id          string
	geocoder    ports.Geocoder
	planner     *RoutePlanner
	mapSync     *MapSync
	prefs       ports.PreferenceStore
	events      ports.EventPublisher
	metrics     SessionMetrics
	log         *zap.Logger
	incremental bool

	busy atomic.Bool

	mu             sync.Mutex
	stops          *domain.StopList
	generation     uint64
	pending        []ports.Event
	summary        *domain.TripSummary
	summaryVisible bool
	theme          domain.Theme
}

func NewSession(ctx context.Context, stops *domain.StopList, opts SessionOptions) (*Session, error) {
	if stops == nil {
		return nil, errors.New("new session: stop list is nil")
	}
	if opts.Geocoder == nil || opts.Router == nil || opts.Surface == nil {
		return nil, errors.New("new session: geocoder, router and surface are required")
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{
		id:          uuid.NewString(),
		geocoder:    opts.Geocoder,
		planner:     NewRoutePlanner(opts.Router),
		mapSync:     NewMapSync(opts.Surface),
		prefs:       opts.Prefs,
		events:      opts.Events,
		metrics:     opts.Metrics,
		log:         log,
		incremental: opts.Incremental,
		stops:       stops,
		theme:       domain.ThemeLight,
	}
	if opts.DefaultTheme != "" {
		s.theme = opts.DefaultTheme
	}

	if s.prefs != nil {
		theme, ok, err := s.prefs.Theme(ctx)
		if err != nil {
			log.Warn("load theme preference failed", zap.Error(err))
		} else if ok {
			s.theme = theme
		}
	}

	s.mapSync.SetTiles(s.theme.TileLayer())
	stops.Subscribe(s.onStopsChanged)

	snapshot := stops.Snapshot()
	s.mapSync.SyncMarkers(snapshot)
	s.observeStops(len(snapshot))

	return s, nil
}

func (s *Session) ID() string { return s.id }

// AddStop resolves query and appends the result. The Stop List is untouched on failure.
func (s *Session) AddStop(ctx context.Context, query string) (domain.GeoPoint, error) {
	p, err := s.geocoder.Resolve(ctx, query)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("add stop: %w", err)
	}

	_ = s.mutate(func() error {
		s.stops.Append(p)
		return nil
	})

	return p, nil
}

func (s *Session) RemoveStop(index int) error {
	return s.mutate(func() error {
		if err := s.stops.RemoveAt(index); err != nil {
			return fmt.Errorf("remove stop: %w", err)
		}
		return nil
	})
}

// MoveStop is the drag-reorder entry point. source may be domain.NoSource.
func (s *Session) MoveStop(source, target int) error {
	return s.mutate(func() error {
		if err := s.stops.MoveTo(source, target); err != nil {
			return fmt.Errorf("move stop: %w", err)
		}
		return nil
	})
}

// mutate runs fn with s.mu held and publishes the events it queued after
// the lock is released.
func (s *Session) mutate(fn func() error) error {
	s.mu.Lock()
	err := fn()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, e := range pending {
		s.emit(context.Background(), e)
	}
	return err
}

// Calculate routes the current itinerary. At most one calculation runs at a
// time; a concurrent call fails fast with ErrBusy.
//
// A calculation in flight runs to completion or failure. Cancelling ctx does
// not stop it; only its values are kept. If the Stop List changes while
// legs are being routed, the result is returned but neither drawn nor shown.
func (s *Session) Calculate(ctx context.Context, req CalculateRequest) (_ *domain.TripSummary, err error) {
	ctx = context.WithoutCancel(ctx)

	if !s.busy.CompareAndSwap(false, true) {
		s.observeCalculation("busy", 0)
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	start := time.Now()
	defer func() { s.observeCalculation(calculationOutcome(err), time.Since(start)) }()

	s.mu.Lock()
	snapshot := s.stops.Snapshot()
	gen := s.generation
	if len(snapshot) >= 2 {
		s.summaryVisible = false
		if s.incremental {
			s.mapSync.BeginRoute(snapshot)
		}
	}
	s.mu.Unlock()

	if len(snapshot) < 2 {
		return nil, &domain.InsufficientStopsError{Count: len(snapshot)}
	}

	var onLeg LegFunc
	if s.incremental {
		onLeg = func(lr domain.LegResult) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.generation == gen {
				s.mapSync.DrawLeg(lr)
			}
		}
	}

	summary, err := s.planner.Calculate(ctx, snapshot, req.IncludeReturn, req.Cost, onLeg)
	if err != nil {
		s.publish(ctx, ports.EventTripFailed, map[string]string{"error": err.Error()})
		return nil, fmt.Errorf("calculate: %w", err)
	}

	s.mu.Lock()
	stale := s.generation != gen
	if !stale {
		if s.incremental {
			s.mapSync.FinishRoute(snapshot)
		} else {
			s.mapSync.SyncRoute(snapshot, summary)
		}
		s.summary = summary
		s.summaryVisible = true
	}
	s.mu.Unlock()

	s.publish(ctx, ports.EventTripCalculated, map[string]any{
		"legs":                   len(summary.Legs),
		"total_distance_meters":  summary.TotalDistanceMeters,
		"total_duration_seconds": summary.TotalDurationSeconds,
		"stale":                  stale,
	})

	return summary, nil
}

func (s *Session) Busy() bool { return s.busy.Load() }

func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.stops.Snapshot()
	stops := make([]StopView, 0, len(snapshot))
	for i, p := range snapshot {
		stops = append(stops, StopView{
			Index:    i,
			Label:    domain.Label(i),
			Point:    p,
			Endpoint: domain.IsEndpoint(i, len(snapshot)),
		})
	}

	v := SessionView{
		ID:             s.id,
		Stops:          stops,
		Anchored:       s.stops.Anchored(),
		Subtitle:       domain.Subtitle(snapshot),
		Theme:          s.theme,
		Busy:           s.busy.Load(),
		SummaryVisible: s.summaryVisible,
	}
	if s.summaryVisible {
		v.Summary = s.summary
	}
	return v
}

func (s *Session) Theme() domain.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme persists theme and swaps the map tiles.
func (s *Session) SetTheme(ctx context.Context, theme domain.Theme) error {
	if _, err := domain.ParseTheme(string(theme)); err != nil {
		return err
	}

	if s.prefs != nil {
		if err := s.prefs.SetTheme(ctx, theme); err != nil {
			return fmt.Errorf("set theme: %w", err)
		}
	}

	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()

	s.mapSync.SetTiles(theme.TileLayer())
	return nil
}

func (s *Session) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	next := s.Theme().Toggle()
	if err := s.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// onStopsChanged runs synchronously inside every Stop List mutation, with s.mu
// held. The event is queued and published by mutate once s.mu is released.
func (s *Session) onStopsChanged(c domain.Change) {
	s.generation++
	s.summaryVisible = false
	s.mapSync.SyncMarkers(c.Stops)
	s.observeStops(len(c.Stops))

	names := make([]string, 0, len(c.Stops))
	for _, p := range c.Stops {
		names = append(names, p.Name)
	}

	s.pending = append(s.pending, s.event(ports.EventStopsChanged, map[string]any{
		"kind":   c.Kind,
		"index":  c.Index,
		"target": c.Target,
		"stops":  names,
	}))
}

func (s *Session) event(kind string, payload any) ports.Event {
	return ports.Event{
		Type:      kind,
		SessionID: s.id,
		At:        time.Now().UTC(),
		Payload:   payload,
	}
}

func (s *Session) publish(ctx context.Context, kind string, payload any) {
	s.emit(ctx, s.event(kind, payload))
}

func (s *Session) emit(ctx context.Context, e ports.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.Warn("publish session event failed", zap.String("type", e.Type), zap.Error(err))
	}
}

func (s *Session) observeStops(n int) {
	if s.metrics != nil {
		s.metrics.StopsSet(n)
	}
}

func (s *Session) observeCalculation(outcome string, d time.Duration) {
	if s.metrics != nil {
		s.metrics.CalculationObserved(outcome, d)
	}
}

func calculationOutcome(err error) string {
	var (
		insufficient *domain.InsufficientStopsError
		routing      *domain.RoutingError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &insufficient):
		return "insufficient"
	case errors.As(err, &routing):
		return "routing_error"
	default:
		return "error"
	}
}
