package api

import (
	"net/http"
	"roadtrip-planner/internal/adapters/mapview"
	"roadtrip-planner/internal/api/handlers"
	"roadtrip-planner/internal/services"

	"go.uber.org/zap"
)

type Deps struct {
	Session *services.Session
	Scene   *mapview.Scene
	Metrics http.Handler
	Logger  *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	sessionHandler := &handlers.SessionHandler{Session: d.Session}
	mapHandler := &handlers.MapHandler{Scene: d.Scene}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /session", sessionHandler.Get)
	mux.HandleFunc("POST /stops", sessionHandler.AddStop)
	mux.HandleFunc("DELETE /stops/{index}", sessionHandler.RemoveStop)
	mux.HandleFunc("POST /stops/move", sessionHandler.MoveStop)
	mux.HandleFunc("POST /trip", sessionHandler.Calculate)
	mux.HandleFunc("GET /theme", sessionHandler.GetTheme)
	mux.HandleFunc("PUT /theme", sessionHandler.PutTheme)
	mux.HandleFunc("POST /theme/toggle", sessionHandler.ToggleTheme)
	mux.HandleFunc("GET /map", mapHandler.Get)
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return loggingMiddleware(log, mux)
}
