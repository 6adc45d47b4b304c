package handler

import (
	"net/http"

	"github.com/meditactive/meditactive/internal/config"
)

type HomeHandler struct {
	cfg *config.Config
}

func NewHomeHandler(cfg *config.Config) *HomeHandler {
	return &HomeHandler{cfg: cfg}
}

func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	// The mux "/" pattern also catches everything without a better match.
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"name":    h.cfg.AppName,
		"message": "track goals, meditate, earn coins",
	})
}

func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
