package handlers

import (
	"net/http"
	"roadtrip-planner/internal/api/dto"
	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/services"
	"strconv"
	"strings"
)

// SessionHandler exposes the itinerary and route calculation of one session.
type SessionHandler struct {
	Session *services.Session
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.FromSessionView(h.Session.View()))
}

func (h *SessionHandler) AddStop(w http.ResponseWriter, r *http.Request) {
	var req dto.AddStopRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeError(w, r, http.StatusBadRequest, "query is required")
		return
	}

	if _, err := h.Session.AddStop(r.Context(), query); err != nil {
		writeDomainError(w, r, "add stop", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.FromSessionView(h.Session.View()))
}

func (h *SessionHandler) RemoveStop(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "index must be an integer")
		return
	}

	if err := h.Session.RemoveStop(index); err != nil {
		writeDomainError(w, r, "remove stop", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromSessionView(h.Session.View()))
}

func (h *SessionHandler) MoveStop(w http.ResponseWriter, r *http.Request) {
	var req dto.MoveStopRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	from := domain.NoSource
	if req.From != nil {
		from = *req.From
	}

	if err := h.Session.MoveStop(from, req.To); err != nil {
		writeDomainError(w, r, "move stop", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromSessionView(h.Session.View()))
}

// Calculate routes the current itinerary and returns the trip summary.
func (h *SessionHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.TripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var cost *domain.CostInput
	if req.RatePerKm != nil {
		if *req.RatePerKm < 0 {
			writeError(w, r, http.StatusBadRequest, "rate_per_km must not be negative")
			return
		}
		cost = &domain.CostInput{RatePerKm: *req.RatePerKm, ProfileLabel: req.Profile}
	}

	summary, err := h.Session.Calculate(r.Context(), services.CalculateRequest{
		IncludeReturn: req.IncludeReturn,
		Cost:          cost,
	})
	if err != nil {
		writeDomainError(w, r, "calculate", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromSummary(summary))
}
