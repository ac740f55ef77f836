package handlers

import (
	"net/http"
	"roadtrip-planner/internal/api/dto"
	"roadtrip-planner/internal/domain"
)

func (h *SessionHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.ThemeResponse{Theme: string(h.Session.Theme())})
}

func (h *SessionHandler) PutTheme(w http.ResponseWriter, r *http.Request) {
	var req dto.ThemeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	theme, err := domain.ParseTheme(req.Theme)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "theme must be light or dark")
		return
	}

	if err := h.Session.SetTheme(r.Context(), theme); err != nil {
		writeDomainError(w, r, "set theme", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ThemeResponse{Theme: string(theme)})
}

func (h *SessionHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.Session.ToggleTheme(r.Context())
	if err != nil {
		writeDomainError(w, r, "toggle theme", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ThemeResponse{Theme: string(theme)})
}
