package handler

import (
	"net/http"

	"github.com/meditactive/meditactive/internal/ctxkeys"
	"github.com/meditactive/meditactive/internal/service"
)

type MeditationHandler struct {
	meditation *service.MeditationService
}

func NewMeditationHandler(meditation *service.MeditationService) *MeditationHandler {
	return &MeditationHandler{meditation: meditation}
}

// SaveSession records a finished timer run and credits coins for it.
func (h *MeditationHandler) SaveSession(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in struct {
		DurationSeconds int `json:"duration_seconds"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.meditation.SaveSession(r.Context(), user.ID, in.DurationSeconds)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *MeditationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	sessions, err := h.meditation.Sessions(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *MeditationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	stats, err := h.meditation.Stats(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
