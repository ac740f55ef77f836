package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/platform/obs"
	"roadtrip-planner/internal/services"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 16

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Logger(r.Context()).Warn("encode failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// writeDomainError maps the error taxonomy to HTTP statuses. Every failure is
// reported to the caller with a message.
func writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var (
		notFound     *domain.NotFoundError
		index        *domain.IndexError
		insufficient *domain.InsufficientStopsError
		routing      *domain.RoutingError
	)

	switch {
	case errors.As(err, &notFound):
		writeError(w, r, http.StatusNotFound, notFound.Error())
	case errors.As(err, &index):
		writeError(w, r, http.StatusBadRequest, index.Error())
	case errors.As(err, &insufficient):
		writeError(w, r, http.StatusUnprocessableEntity, insufficient.Error())
	case errors.As(err, &routing):
		writeError(w, r, http.StatusBadGateway, routing.Error())
	case errors.Is(err, services.ErrBusy):
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		obs.Logger(r.Context()).Error(op+" failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
