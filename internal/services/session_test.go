package services

import (
	"context"
	"errors"
	"roadtrip-planner/internal/adapters/mapview"
	"roadtrip-planner/internal/adapters/osm"
	"roadtrip-planner/internal/adapters/prefs"
	"roadtrip-planner/internal/adapters/publisher"
	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/ports"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	session  *Session
	scene    *mapview.Scene
	router   *osm.MockSegmentRouter
	geocoder *osm.MockGeocoder
	events   *publisher.Recorder
}

func newSessionFixture(t *testing.T, stops *domain.StopList, incremental bool) *sessionFixture {
	t.Helper()

	f := &sessionFixture{
		scene:  mapview.NewScene(DefaultCenter, DefaultZoom),
		router: threeStopRouter(),
		geocoder: osm.NewMockGeocoder(map[string]domain.GeoPoint{
			"copenhagen": s2,
			"paris":      s3,
		}),
		events: &publisher.Recorder{},
	}

	s, err := NewSession(context.Background(), stops, SessionOptions{
		Geocoder:    f.geocoder,
		Router:      f.router,
		Surface:     f.scene,
		Prefs:       prefs.NewMemoryStore(),
		Events:      f.events,
		Incremental: incremental,
	})
	require.NoError(t, err)
	f.session = s
	return f
}

func TestSessionMutationsResyncMap(t *testing.T) {
	f := newSessionFixture(t, domain.NewStopList(s1), true)
	require.Len(t, f.scene.Markers(), 1)

	_, err := f.session.AddStop(context.Background(), "Copenhagen")
	require.NoError(t, err)
	_, err = f.session.AddStop(context.Background(), "Paris")
	require.NoError(t, err)

	markers := f.scene.Markers()
	require.Len(t, markers, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{markers[0].Label, markers[1].Label, markers[2].Label})

	require.NoError(t, f.session.RemoveStop(1))
	v := f.session.View()
	require.Len(t, v.Stops, 2)
	assert.Equal(t, "S3", v.Stops[1].Point.Name)
	assert.Equal(t, "B", v.Stops[1].Label)
	assert.Equal(t, "S1 → S3", v.Subtitle)

	assert.Equal(t, []string{ports.EventStopsChanged, ports.EventStopsChanged, ports.EventStopsChanged}, f.events.Types())
}

func TestSessionAddStopNotFound(t *testing.T) {
	f := newSessionFixture(t, domain.NewStopList(s1), true)

	_, err := f.session.AddStop(context.Background(), "Atlantis")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Len(t, f.session.View().Stops, 1)
	assert.Empty(t, f.events.Types())
}

func TestSessionCalculate(t *testing.T) {
	f := newSessionFixture(t, domain.NewStopList(s1, s2, s3), true)
	fitsBefore := f.scene.FitCount()

	summary, err := f.session.Calculate(context.Background(), CalculateRequest{IncludeReturn: true})
	require.NoError(t, err)
	assert.Len(t, summary.Legs, 4)
	assert.Len(t, f.scene.Polylines(), 4)
	assert.Equal(t, fitsBefore+1, f.scene.FitCount())

	v := f.session.View()
	assert.True(t, v.SummaryVisible)
	assert.Same(t, summary, v.Summary)

	// Any mutation hides the summary and clears the route.
	require.NoError(t, f.session.MoveStop(0, 2))
	v = f.session.View()
	assert.False(t, v.SummaryVisible)
	assert.Nil(t, v.Summary)
	assert.Empty(t, f.scene.Polylines())
	assert.Equal(t, "S2", v.Stops[0].Point.Name)
}

func TestSessionCalculateInsufficientStops(t *testing.T) {
	f := newSessionFixture(t, domain.NewStopList(s1), true)
	markersBefore := f.scene.Markers()

	_, err := f.session.Calculate(context.Background(), CalculateRequest{})
	var ise *domain.InsufficientStopsError
	require.ErrorAs(t, err, &ise)
	assert.Empty(t, f.router.Calls())
	assert.Equal(t, markersBefore, f.scene.Markers())
	assert.False(t, f.session.Busy())
}

func TestSessionCalculateFailureLeavesPartialRoute(t *testing.T) {
	f := newSessionFixture(t, domain.NewStopList(s1, s2, s3), true)
	f.router.FailOn("S2", "S3", errors.New("NoRoute"))

	_, err := f.session.Calculate(context.Background(), CalculateRequest{IncludeReturn: true})
	var re *domain.RoutingError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "S2 → S3", re.Pair())

	assert.Len(t, f.scene.Polylines(), 1)
	assert.False(t, f.session.View().SummaryVisible)
	assert.Len(t, f.session.View().Stops, 3)
	assert.Contains(t, f.events.Types(), ports.EventTripFailed)
}

func TestSessionCalculateFailureWithoutIncrementalRender(t *testing.T) {
	f := newSessionFixture(t, domain.NewStopList(s1, s2, s3), false)
	f.router.FailOn("S2", "S3", errors.New("NoRoute"))

	_, err := f.session.Calculate(context.Background(), CalculateRequest{})
	require.Error(t, err)
	assert.Empty(t, f.scene.Polylines())
	assert.Len(t, f.scene.Markers(), 3)
}

type blockingRouter struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingRouter) Route(ctx context.Context, from, to domain.GeoPoint) (domain.RouteResult, error) {
	b.started <- struct{}{}
	<-b.release
	return domain.RouteResult{DistanceMeters: 1, DurationSeconds: 1}, nil
}

func TestSessionRejectsConcurrentCalculate(t *testing.T) {
	router := &blockingRouter{started: make(chan struct{}, 4), release: make(chan struct{})}
	s, err := NewSession(context.Background(), domain.NewStopList(s1, s2), SessionOptions{
		Geocoder:    osm.NewMockGeocoder(nil),
		Router:      router,
		Surface:     mapview.NewScene(DefaultCenter, DefaultZoom),
		Incremental: true,
	})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.Calculate(context.Background(), CalculateRequest{})
		done <- err
	}()

	select {
	case <-router.started:
	case <-time.After(2 * time.Second):
		t.Fatal("calculation did not start")
	}

	assert.True(t, s.Busy())
	_, err = s.Calculate(context.Background(), CalculateRequest{})
	require.ErrorIs(t, err, ErrBusy)

	close(router.release)
	require.NoError(t, <-done)
	assert.False(t, s.Busy())
}

func TestSessionAnchoredProtectsEndpoints(t *testing.T) {
	f := newSessionFixture(t, domain.NewAnchoredStopList(s1, s3), true)

	_, err := f.session.AddStop(context.Background(), "Copenhagen")
	require.NoError(t, err)

	v := f.session.View()
	assert.True(t, v.Anchored)
	assert.Equal(t, []string{"S1", "S2", "S3"}, []string{v.Stops[0].Point.Name, v.Stops[1].Point.Name, v.Stops[2].Point.Name})

	var ie *domain.IndexError
	require.ErrorAs(t, f.session.RemoveStop(0), &ie)
	require.ErrorAs(t, f.session.RemoveStop(2), &ie)
	require.NoError(t, f.session.RemoveStop(1))
}

func TestSessionTheme(t *testing.T) {
	f := newSessionFixture(t, domain.NewStopList(), true)
	assert.Equal(t, domain.ThemeLight, f.session.Theme())
	assert.Equal(t, domain.ThemeLight.TileLayer(), f.scene.Tiles())

	next, err := f.session.ToggleTheme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, next)
	assert.Equal(t, 19, f.scene.Tiles().MaxZoom)

	require.Error(t, f.session.SetTheme(context.Background(), domain.Theme("sepia")))
	assert.Equal(t, domain.ThemeDark, f.session.Theme())
}

func TestSessionLoadsStoredTheme(t *testing.T) {
	store := prefs.NewMemoryStore()
	require.NoError(t, store.SetTheme(context.Background(), domain.ThemeDark))

	s, err := NewSession(context.Background(), domain.NewStopList(), SessionOptions{
		Geocoder: osm.NewMockGeocoder(nil),
		Router:   threeStopRouter(),
		Surface:  mapview.NewScene(DefaultCenter, DefaultZoom),
		Prefs:    store,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, s.Theme())
}

// hookRouter runs onFirst while the first leg is being routed and honours
// cancellation of the context it is handed.
type hookRouter struct {
	next    ports.SegmentRouter
	once    sync.Once
	onFirst func()
}

func (h *hookRouter) Route(ctx context.Context, from, to domain.GeoPoint) (domain.RouteResult, error) {
	h.once.Do(h.onFirst)
	if err := ctx.Err(); err != nil {
		return domain.RouteResult{}, err
	}
	return h.next.Route(ctx, from, to)
}

func TestSessionCalculateOutlivesCallerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mock := threeStopRouter()
	scene := mapview.NewScene(DefaultCenter, DefaultZoom)
	s, err := NewSession(context.Background(), domain.NewStopList(s1, s2, s3), SessionOptions{
		Geocoder:    osm.NewMockGeocoder(nil),
		Router:      &hookRouter{next: mock, onFirst: cancel},
		Surface:     scene,
		Incremental: true,
	})
	require.NoError(t, err)

	summary, err := s.Calculate(ctx, CalculateRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"S1|S2", "S2|S3"}, mock.Calls())
	assert.Len(t, summary.Legs, 2)
	assert.Len(t, scene.Polylines(), 2)
	assert.True(t, s.View().SummaryVisible)
}

func TestSessionCalculateDiscardsResultWhenStopsChange(t *testing.T) {
	events := &publisher.Recorder{}
	scene := mapview.NewScene(DefaultCenter, DefaultZoom)

	var s *Session
	router := &hookRouter{next: threeStopRouter(), onFirst: func() {
		require.NoError(t, s.RemoveStop(2))
	}}

	s, err := NewSession(context.Background(), domain.NewStopList(s1, s2, s3), SessionOptions{
		Geocoder:    osm.NewMockGeocoder(nil),
		Router:      router,
		Surface:     scene,
		Events:      events,
		Incremental: true,
	})
	require.NoError(t, err)

	summary, err := s.Calculate(context.Background(), CalculateRequest{})
	require.NoError(t, err)
	assert.Len(t, summary.Legs, 2)

	v := s.View()
	assert.Len(t, v.Stops, 2)
	assert.False(t, v.SummaryVisible)
	assert.Nil(t, v.Summary)
	assert.Empty(t, scene.Polylines())
	assert.Len(t, scene.Markers(), 2)
	assert.Equal(t, []string{ports.EventStopsChanged, ports.EventTripCalculated}, events.Types())
}

func TestSessionCalculateWithoutIncrementalRenderDiscardsStaleResult(t *testing.T) {
	scene := mapview.NewScene(DefaultCenter, DefaultZoom)

	var s *Session
	router := &hookRouter{next: threeStopRouter(), onFirst: func() {
		require.NoError(t, s.MoveStop(0, 2))
	}}

	s, err := NewSession(context.Background(), domain.NewStopList(s1, s2, s3), SessionOptions{
		Geocoder: osm.NewMockGeocoder(nil),
		Router:   router,
		Surface:  scene,
	})
	require.NoError(t, err)

	_, err = s.Calculate(context.Background(), CalculateRequest{})
	require.NoError(t, err)
	assert.False(t, s.View().SummaryVisible)
	assert.Empty(t, scene.Polylines())
}

// lockCheckingPublisher records events published while the session lock is held.
type lockCheckingPublisher struct {
	session   *Session
	published int
	underLock []string
}

func (p *lockCheckingPublisher) Publish(_ context.Context, e ports.Event) error {
	p.published++
	if p.session.mu.TryLock() {
		p.session.mu.Unlock()
	} else {
		p.underLock = append(p.underLock, e.Type)
	}
	return nil
}

func TestSessionPublishesOutsideLock(t *testing.T) {
	pub := &lockCheckingPublisher{}
	s, err := NewSession(context.Background(), domain.NewStopList(s1), SessionOptions{
		Geocoder: osm.NewMockGeocoder(map[string]domain.GeoPoint{"copenhagen": s2, "paris": s3}),
		Router:   threeStopRouter(),
		Surface:  mapview.NewScene(DefaultCenter, DefaultZoom),
		Events:   pub,
	})
	require.NoError(t, err)
	pub.session = s

	_, err = s.AddStop(context.Background(), "Copenhagen")
	require.NoError(t, err)
	_, err = s.AddStop(context.Background(), "Paris")
	require.NoError(t, err)
	require.NoError(t, s.MoveStop(2, 1))
	require.NoError(t, s.MoveStop(1, 2))
	_, err = s.Calculate(context.Background(), CalculateRequest{})
	require.NoError(t, err)
	require.NoError(t, s.RemoveStop(1))

	assert.Equal(t, 6, pub.published)
	assert.Empty(t, pub.underLock)
}
