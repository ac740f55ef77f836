package mapview

import (
	"math"
	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/ports"
	"strconv"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Viewport is the visible region. Bounds is set by FitBounds and cleared by SetView.
type Viewport struct {
	Center  domain.LatLng
	Zoom    int
	Bounds  *orb.Bound
	Padding int
}

// Scene is an in-memory ports.MapSurface. It records layers, tiles and the
// viewport so they can be served to a client or inspected in tests.
//
// Scene is safe for concurrent use.
type Scene struct {
	mu        sync.Mutex
	seq       int
	order     []ports.LayerID
	markers   map[ports.LayerID]ports.Marker
	polylines map[ports.LayerID]ports.Polyline
	viewport  Viewport
	tiles     domain.TileLayer
	fits      int
}

func NewScene(center domain.LatLng, zoom int) *Scene {
	return &Scene{
		markers:   make(map[ports.LayerID]ports.Marker),
		polylines: make(map[ports.LayerID]ports.Polyline),
		viewport:  Viewport{Center: center, Zoom: zoom},
	}
}

func (s *Scene) AddMarker(m ports.Marker) ports.LayerID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID("marker")
	s.markers[id] = m
	s.order = append(s.order, id)
	return id
}

func (s *Scene) AddPolyline(p ports.Polyline) ports.LayerID {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := make([]domain.LatLng, len(p.Path))
	copy(path, p.Path)
	p.Path = path

	id := s.nextID("route")
	s.polylines[id] = p
	s.order = append(s.order, id)
	return id
}

func (s *Scene) RemoveLayer(id ports.LayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.markers, id)
	delete(s.polylines, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Scene) FitBounds(points []domain.LatLng, padding int) {
	if len(points) == 0 {
		return
	}

	mp := make(orb.MultiPoint, 0, len(points))
	for _, p := range points {
		mp = append(mp, orb.Point{p.Lng, p.Lat})
	}
	b := mp.Bound()
	c := b.Center()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.fits++
	s.viewport = Viewport{
		Center:  domain.LatLng{Lat: c.Lat(), Lng: c.Lon()},
		Zoom:    zoomForBound(b, s.maxZoom()),
		Bounds:  &b,
		Padding: padding,
	}
}

func (s *Scene) SetView(center domain.LatLng, zoom int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.viewport = Viewport{Center: center, Zoom: zoom}
}

func (s *Scene) SetTiles(t domain.TileLayer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tiles = t
}

func (s *Scene) Markers() []ports.Marker {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ports.Marker, 0, len(s.markers))
	for _, id := range s.order {
		if m, ok := s.markers[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

func (s *Scene) Polylines() []ports.Polyline {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ports.Polyline, 0, len(s.polylines))
	for _, id := range s.order {
		if p, ok := s.polylines[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *Scene) Viewport() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

func (s *Scene) Tiles() domain.TileLayer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tiles
}

// FitCount is the number of FitBounds calls so far.
func (s *Scene) FitCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fits
}

// FeatureCollection exports markers as Points and routes as LineStrings,
// in drawing order.
func (s *Scene) FeatureCollection() *geojson.FeatureCollection {
	s.mu.Lock()
	defer s.mu.Unlock()

	fc := geojson.NewFeatureCollection()
	for _, id := range s.order {
		if m, ok := s.markers[id]; ok {
			f := geojson.NewFeature(orb.Point{m.Position.Lng, m.Position.Lat})
			f.ID = string(id)
			f.Properties["kind"] = "marker"
			f.Properties["label"] = m.Label
			f.Properties["popup"] = m.Popup
			f.Properties["color"] = m.Color
			fc.Append(f)
			continue
		}

		if p, ok := s.polylines[id]; ok {
			ls := make(orb.LineString, 0, len(p.Path))
			for _, c := range p.Path {
				ls = append(ls, orb.Point{c.Lng, c.Lat})
			}
			f := geojson.NewFeature(ls)
			f.ID = string(id)
			f.Properties["kind"] = "route"
			f.Properties["color"] = p.Color
			f.Properties["weight"] = p.Weight
			f.Properties["opacity"] = p.Opacity
			fc.Append(f)
		}
	}
	return fc
}

func (s *Scene) nextID(kind string) ports.LayerID {
	s.seq++
	return ports.LayerID(kind + "-" + strconv.Itoa(s.seq))
}

func (s *Scene) maxZoom() int {
	if s.tiles.MaxZoom > 0 {
		return s.tiles.MaxZoom
	}
	return 18
}

// zoomForBound picks the largest web-mercator zoom at which the bound's
// widest side still fits in a single 360 degree tile span.
func zoomForBound(b orb.Bound, maxZoom int) int {
	span := math.Max(b.Max.Lon()-b.Min.Lon(), b.Max.Lat()-b.Min.Lat())
	if span <= 0 {
		return maxZoom
	}
	z := int(math.Floor(math.Log2(360 / span)))
	if z < 0 {
		return 0
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}
