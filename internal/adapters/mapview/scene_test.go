package mapview

import (
	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/ports"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	stockholm = domain.LatLng{Lat: 59.3293, Lng: 18.0686}
	paris     = domain.LatLng{Lat: 48.8566, Lng: 2.3522}
)

func TestSceneLayersKeepDrawOrder(t *testing.T) {
	s := NewScene(domain.LatLng{Lat: 54, Lng: 10}, 5)

	a := s.AddMarker(ports.Marker{Position: stockholm, Label: "A"})
	r := s.AddPolyline(ports.Polyline{Path: []domain.LatLng{stockholm, paris}, Color: "#0d6efd"})
	s.AddMarker(ports.Marker{Position: paris, Label: "B"})

	assert.NotEqual(t, a, r)
	require.Len(t, s.Markers(), 2)
	assert.Equal(t, "A", s.Markers()[0].Label)
	require.Len(t, s.Polylines(), 1)

	s.RemoveLayer(a)
	s.RemoveLayer(r)
	s.RemoveLayer("missing")

	require.Len(t, s.Markers(), 1)
	assert.Equal(t, "B", s.Markers()[0].Label)
	assert.Empty(t, s.Polylines())
}

func TestSceneFitBoundsAndSetView(t *testing.T) {
	s := NewScene(domain.LatLng{Lat: 54, Lng: 10}, 5)

	s.FitBounds(nil, 50)
	assert.Equal(t, 0, s.FitCount())

	s.FitBounds([]domain.LatLng{stockholm, paris}, 50)
	vp := s.Viewport()
	require.NotNil(t, vp.Bounds)
	assert.Equal(t, 1, s.FitCount())
	assert.Equal(t, 50, vp.Padding)
	assert.Equal(t, 4, vp.Zoom)
	assert.InDelta(t, (stockholm.Lat+paris.Lat)/2, vp.Center.Lat, 1e-9)
	assert.InDelta(t, paris.Lng, vp.Bounds.Min.Lon(), 1e-9)

	s.SetView(paris, 8)
	vp = s.Viewport()
	assert.Nil(t, vp.Bounds)
	assert.Equal(t, 8, vp.Zoom)
	assert.Equal(t, paris, vp.Center)
}

func TestZoomForBound(t *testing.T) {
	assert.Equal(t, 18, zoomForBound(orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{1, 1}}, 18))
	assert.Equal(t, 0, zoomForBound(orb.Bound{Min: orb.Point{-180, -80}, Max: orb.Point{180, 80}}, 18))
	assert.Equal(t, 19, zoomForBound(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{0.0001, 0.0001}}, 19))
}

func TestSceneFeatureCollection(t *testing.T) {
	s := NewScene(domain.LatLng{}, 5)
	s.AddMarker(ports.Marker{Position: stockholm, Label: "A", Popup: "A – Stockholm", Color: "#0d6efd"})
	s.AddPolyline(ports.Polyline{Path: []domain.LatLng{stockholm, paris}, Color: "#dc3545", Weight: 4, Opacity: 0.5})

	fc := s.FeatureCollection()
	require.Len(t, fc.Features, 2)

	marker := fc.Features[0]
	assert.Equal(t, "marker", marker.Properties["kind"])
	assert.Equal(t, orb.Point{stockholm.Lng, stockholm.Lat}, marker.Geometry)

	route := fc.Features[1]
	assert.Equal(t, "route", route.Properties["kind"])
	assert.Equal(t, "#dc3545", route.Properties["color"])
	ls, ok := route.Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Equal(t, orb.Point{paris.Lng, paris.Lat}, ls[1])
}
