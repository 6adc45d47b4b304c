package handler

import (
	"net/http"

	"github.com/meditactive/meditactive/internal/ctxkeys"
	"github.com/meditactive/meditactive/internal/service"
)

// DiaryHandler serves the journal endpoints. All routes require auth; the
// entry owner comes from the session, never the URL.
type DiaryHandler struct {
	diary *service.DiaryService
}

func NewDiaryHandler(diary *service.DiaryService) *DiaryHandler {
	return &DiaryHandler{diary: diary}
}

func (h *DiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	entries, err := h.diary.Entries(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *DiaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.diary.ByID(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *DiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in service.DiaryEntryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.diary.Create(r.Context(), user.ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *DiaryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in service.DiaryEntryUpdateInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.diary.Update(r.Context(), user.ID, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *DiaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.diary.Delete(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "diary entry deleted"})
}
