package handler

import (
	"net/http"

	"github.com/meditactive/meditactive/internal/ctxkeys"
	"github.com/meditactive/meditactive/internal/service"
)

type DonationHandler struct {
	donations *service.DonationService
}

func NewDonationHandler(donations *service.DonationService) *DonationHandler {
	return &DonationHandler{donations: donations}
}

// Donate spends coins on a tree or a project donation.
func (h *DonationHandler) Donate(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in service.DonationInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.donations.Donate(r.Context(), user.ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *DonationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	donations, err := h.donations.Donations(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, donations)
}

func (h *DonationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	stats, err := h.donations.Stats(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
