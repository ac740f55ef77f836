package handlers

import (
	"net/http"
	"roadtrip-planner/internal/adapters/mapview"

	"github.com/paulmach/orb/geojson"
)

type viewportResponse struct {
	Center  [2]float64  `json:"center"`
	Zoom    int         `json:"zoom"`
	Bounds  *[4]float64 `json:"bounds,omitempty"` // [minLat, minLng, maxLat, maxLng]
	Padding int         `json:"padding,omitempty"`
}

type tilesResponse struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"max_zoom"`
}

type mapResponse struct {
	Viewport viewportResponse           `json:"viewport"`
	Tiles    tilesResponse              `json:"tiles"`
	Layers   *geojson.FeatureCollection `json:"layers"`
}

// MapHandler serves the rendered map scene.
type MapHandler struct {
	Scene *mapview.Scene
}

func (h *MapHandler) Get(w http.ResponseWriter, r *http.Request) {
	vp := h.Scene.Viewport()
	tiles := h.Scene.Tiles()

	res := mapResponse{
		Viewport: viewportResponse{
			Center:  [2]float64{vp.Center.Lat, vp.Center.Lng},
			Zoom:    vp.Zoom,
			Padding: vp.Padding,
		},
		Tiles: tilesResponse{
			URL:         tiles.URL,
			Attribution: tiles.Attribution,
			MaxZoom:     tiles.MaxZoom,
		},
		Layers: h.Scene.FeatureCollection(),
	}
	if vp.Bounds != nil {
		b := [4]float64{vp.Bounds.Min.Lat(), vp.Bounds.Min.Lon(), vp.Bounds.Max.Lat(), vp.Bounds.Max.Lon()}
		res.Viewport.Bounds = &b
	}

	writeJSON(w, r, http.StatusOK, res)
}
