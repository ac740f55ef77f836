package domain

import (
	"fmt"
	"strings"
)

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// Return coordinates as [lng, lat] for external API compatibility.
func (c LatLng) CoordsToList() []float64 { return []float64{c.Lng, c.Lat} }

// GeoPoint is a named stop. Values are never mutated after construction.
type GeoPoint struct {
	Name string
	Lat  float64
	Lng  float64
}

func NewGeoPoint(name string, lat, lng float64) (GeoPoint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return GeoPoint{}, fmt.Errorf("new geopoint: name must be non-empty")
	}
	if lat < -90 || lat > 90 {
		return GeoPoint{}, fmt.Errorf("new geopoint %q: latitude %f out of range", name, lat)
	}
	if lng < -180 || lng > 180 {
		return GeoPoint{}, fmt.Errorf("new geopoint %q: longitude %f out of range", name, lng)
	}
	return GeoPoint{Name: name, Lat: lat, Lng: lng}, nil
}

func (p GeoPoint) LatLng() LatLng { return LatLng{Lat: p.Lat, Lng: p.Lng} }

// ShortName derives a stop label from a full geocoder display name by keeping
// the first two comma separated components.
func ShortName(displayName string) string {
	parts := strings.Split(displayName, ",")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.TrimSpace(strings.Join(parts, ","))
}
