package services

import (
	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/ports"
	"sync"
)

const (
	EndpointColor     = "#0d6efd"
	IntermediateColor = "#198754"
	ForwardColor      = "#0d6efd"
	ReturnColor       = "#dc3545"

	ForwardWeight  = 5
	ReturnWeight   = 4
	ForwardOpacity = 0.7
	ReturnOpacity  = 0.5

	FitPadding     = 50
	SingleStopZoom = 8
	DefaultZoom    = 5
)

var DefaultCenter = domain.LatLng{Lat: 54.0, Lng: 10.0}

// MapSync keeps a MapSurface consistent with the itinerary and the latest
// TripSummary. Every sync is a full replace of what it drew before; the only
// thing it remembers is which layers it owns.
type MapSync struct {
	surface ports.MapSurface

	mu      sync.Mutex
	markers []ports.LayerID
	routes  []ports.LayerID
}

func NewMapSync(surface ports.MapSurface) *MapSync {
	return &MapSync{surface: surface}
}

// SyncMarkers redraws one marker per stop and fits the viewport to them.
func (m *MapSync) SyncMarkers(stops []domain.GeoPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clear()
	m.drawMarkers(stops)

	switch len(stops) {
	case 0:
		m.surface.SetView(DefaultCenter, DefaultZoom)
	case 1:
		m.surface.SetView(stops[0].LatLng(), SingleStopZoom)
	default:
		m.surface.FitBounds(latLngs(stops), FitPadding)
	}
}

// SyncRoute redraws markers and one polyline per leg, then fits the viewport once.
func (m *MapSync) SyncRoute(stops []domain.GeoPoint, summary *domain.TripSummary) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clear()
	m.drawMarkers(stops)
	if summary != nil {
		for _, lr := range summary.Legs {
			m.drawLeg(lr)
		}
	}
	m.fit(stops)
}

// BeginRoute clears the surface and draws markers without moving the viewport.
// It starts an incremental render continued by DrawLeg and FinishRoute.
func (m *MapSync) BeginRoute(stops []domain.GeoPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clear()
	m.drawMarkers(stops)
}

func (m *MapSync) DrawLeg(lr domain.LegResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.drawLeg(lr)
}

// FinishRoute fits the viewport to the stops after every leg was drawn.
func (m *MapSync) FinishRoute(stops []domain.GeoPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fit(stops)
}

func (m *MapSync) SetTiles(t domain.TileLayer) {
	m.surface.SetTiles(t)
}

func (m *MapSync) clear() {
	for _, id := range m.routes {
		m.surface.RemoveLayer(id)
	}
	for _, id := range m.markers {
		m.surface.RemoveLayer(id)
	}
	m.routes = nil
	m.markers = nil
}

func (m *MapSync) drawMarkers(stops []domain.GeoPoint) {
	for i, s := range stops {
		label := domain.Label(i)
		color := IntermediateColor
		if domain.IsEndpoint(i, len(stops)) {
			color = EndpointColor
		}

		id := m.surface.AddMarker(ports.Marker{
			Position: s.LatLng(),
			Label:    label,
			Popup:    label + " – " + s.Name,
			Color:    color,
		})
		m.markers = append(m.markers, id)
	}
}

func (m *MapSync) drawLeg(lr domain.LegResult) {
	line := ports.Polyline{
		Path:    lr.Result.Path,
		Color:   ForwardColor,
		Weight:  ForwardWeight,
		Opacity: ForwardOpacity,
	}
	if lr.Leg.IsReturn {
		line.Color = ReturnColor
		line.Weight = ReturnWeight
		line.Opacity = ReturnOpacity
	}
	m.routes = append(m.routes, m.surface.AddPolyline(line))
}

func (m *MapSync) fit(stops []domain.GeoPoint) {
	if len(stops) == 0 {
		return
	}
	m.surface.FitBounds(latLngs(stops), FitPadding)
}

func latLngs(stops []domain.GeoPoint) []domain.LatLng {
	out := make([]domain.LatLng, 0, len(stops))
	for _, s := range stops {
		out = append(out, s.LatLng())
	}
	return out
}
