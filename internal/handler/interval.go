package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/meditactive/meditactive/internal/model"
	"github.com/meditactive/meditactive/internal/repository"
	"github.com/meditactive/meditactive/internal/service"
)

type IntervalHandler struct {
	intervals  *service.IntervalService
	completion *service.CompletionService
}

func NewIntervalHandler(intervals *service.IntervalService, completion *service.CompletionService) *IntervalHandler {
	return &IntervalHandler{intervals: intervals, completion: completion}
}

// List supports filtering by user_id, goal_id, start_from, end_until and
// category query parameters. Dates are YYYY-MM-DD.
func (h *IntervalHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseIntervalFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	intervals, err := h.intervals.Intervals(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, intervals)
}

func parseIntervalFilter(r *http.Request) (repository.IntervalFilter, error) {
	var filter repository.IntervalFilter
	q := r.URL.Query()

	if v := q.Get("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, service.Invalid("invalid user_id")
		}
		filter.UserID = &id
	}
	if v := q.Get("goal_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, service.Invalid("invalid goal_id")
		}
		filter.GoalID = &id
	}
	if v := q.Get("start_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, service.Invalid("start_from must be YYYY-MM-DD")
		}
		filter.StartFrom = &t
	}
	if v := q.Get("end_until"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, service.Invalid("end_until must be YYYY-MM-DD")
		}
		filter.EndUntil = &t
	}
	if v := q.Get("category"); v != "" {
		cat := model.Category(v)
		filter.Category = &cat
	}

	return filter, nil
}

func (h *IntervalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	interval, err := h.intervals.ByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, interval)
}

func (h *IntervalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.IntervalInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	interval, err := h.intervals.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, interval)
}

func (h *IntervalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in service.IntervalUpdateInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	interval, err := h.intervals.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, interval)
}

func (h *IntervalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.intervals.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "interval deleted"})
}

func (h *IntervalHandler) AttachGoal(w http.ResponseWriter, r *http.Request) {
	intervalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	goalID, err := pathID(r, "goalId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	interval, err := h.intervals.AttachGoal(r.Context(), intervalID, goalID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, interval)
}

func (h *IntervalHandler) DetachGoal(w http.ResponseWriter, r *http.Request) {
	intervalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	goalID, err := pathID(r, "goalId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.intervals.DetachGoal(r.Context(), intervalID, goalID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "goal detached"})
}

// Complete flips the goal's completion state within the interval and pays
// out the reward. The response carries the coins earned and the balance
// read inside the same transaction.
func (h *IntervalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	intervalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	goalID, err := pathID(r, "goalId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.completion.CompleteGoal(r.Context(), intervalID, goalID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
