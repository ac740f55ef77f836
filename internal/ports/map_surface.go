package ports

import "roadtrip-planner/internal/domain"

type LayerID string

type Marker struct {
	Position domain.LatLng
	Label    string
	Popup    string
	Color    string
}

type Polyline struct {
	Path    []domain.LatLng
	Color   string
	Weight  int
	Opacity float64
}

// Map rendering capability. Calls are fire-and-forget drawing operations.
type MapSurface interface {
	AddMarker(m Marker) LayerID
	AddPolyline(p Polyline) LayerID
	RemoveLayer(id LayerID)
	// Fit the viewport to the bounding box of points with padding in pixels.
	FitBounds(points []domain.LatLng, padding int)
	SetView(center domain.LatLng, zoom int)
	SetTiles(t domain.TileLayer)
}
