package handler

import (
	"net/http"

	"github.com/meditactive/meditactive/internal/model"
	"github.com/meditactive/meditactive/internal/service"
)

type GoalHandler struct {
	goals *service.GoalService
}

func NewGoalHandler(goals *service.GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	var category *model.Category
	if c := r.URL.Query().Get("category"); c != "" {
		cat := model.Category(c)
		category = &cat
	}

	goals, err := h.goals.Goals(r.Context(), category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

// ByCategory returns the catalog grouped into daily, monthly and yearly
// buckets, the shape the timer screen consumes.
func (h *GoalHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.goals.ByCategory(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, grouped)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goals.ByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.GoalInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goals.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in service.GoalUpdateInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goals.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.goals.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "goal deleted"})
}
