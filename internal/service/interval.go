package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/meditactive/meditactive/internal/model"
	"github.com/meditactive/meditactive/internal/repository"
)

type IntervalService struct {
	intervals repository.IntervalRepository
	goals     repository.GoalRepository
	users     repository.UserRepository
}

func NewIntervalService(
	intervals repository.IntervalRepository,
	goals repository.GoalRepository,
	users repository.UserRepository,
) *IntervalService {
	return &IntervalService{intervals: intervals, goals: goals, users: users}
}

type IntervalInput struct {
	UserID    int64          `json:"user_id"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Category  model.Category `json:"category"`
	GoalIDs   []int64        `json:"goal_ids"`
}

// Create stores the interval and attaches any requested goals. Unknown goal
// ids are skipped rather than failing the whole request, matching how the
// bulk attach on creation has always behaved.
func (s *IntervalService) Create(ctx context.Context, in IntervalInput) (*model.Interval, error) {
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, Invalid("start_date and end_date are required")
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, Invalid("end_date must not be before start_date")
	}
	if !in.Category.Valid() {
		return nil, Invalid("category must be daily, monthly or yearly")
	}

	_, err := s.users.ByID(ctx, in.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, NotFound("user not found")
	}
	if err != nil {
		return nil, Internal("load user", err)
	}

	interval := &model.Interval{
		UserID:    in.UserID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Category:  in.Category,
	}

	id, err := s.intervals.Create(ctx, interval)
	if err != nil {
		return nil, Internal("create interval", err)
	}

	for _, goalID := range in.GoalIDs {
		_, err := s.goals.ByID(ctx, goalID)
		if errors.Is(err, repository.ErrGoalNotFound) {
			slog.WarnContext(ctx, "skipping unknown goal on interval create",
				"interval_id", id, "goal_id", goalID)
			continue
		}
		if err != nil {
			return nil, Internal("load goal", err)
		}

		err = s.intervals.LinkGoal(ctx, id, goalID)
		if err != nil && !errors.Is(err, repository.ErrDuplicateLink) {
			return nil, Internal("attach goal", err)
		}
	}

	slog.InfoContext(ctx, "interval created",
		"interval_id", id, "user_id", in.UserID, "goals", len(in.GoalIDs))

	return s.ByID(ctx, id)
}

// ByID loads one interval with its goals attached.
func (s *IntervalService) ByID(ctx context.Context, id int64) (*model.Interval, error) {
	interval, err := s.intervals.ByID(ctx, id)
	if errors.Is(err, repository.ErrIntervalNotFound) {
		return nil, NotFound("interval not found")
	}
	if err != nil {
		return nil, Internal("load interval", err)
	}

	goals, err := s.intervals.GoalsByInterval(ctx, []int64{id})
	if err != nil {
		return nil, Internal("load interval goals", err)
	}
	interval.Goals = goals[id]

	return interval, nil
}

// Intervals lists intervals matching the filter and attaches each one's
// goals with a single batched lookup, regardless of how many intervals the
// filter matched.
func (s *IntervalService) Intervals(ctx context.Context, filter repository.IntervalFilter) ([]*model.Interval, error) {
	if filter.Category != nil && !filter.Category.Valid() {
		return nil, Invalid("category must be daily, monthly or yearly")
	}

	intervals, err := s.intervals.Intervals(ctx, filter)
	if err != nil {
		return nil, Internal("list intervals", err)
	}

	ids := make([]int64, len(intervals))
	for i, iv := range intervals {
		ids[i] = iv.ID
	}

	goals, err := s.intervals.GoalsByInterval(ctx, ids)
	if err != nil {
		return nil, Internal("load interval goals", err)
	}
	for _, iv := range intervals {
		iv.Goals = goals[iv.ID]
	}

	return intervals, nil
}

type IntervalUpdateInput struct {
	StartDate *time.Time      `json:"start_date"`
	EndDate   *time.Time      `json:"end_date"`
	Category  *model.Category `json:"category"`
}

func (s *IntervalService) Update(ctx context.Context, id int64, in IntervalUpdateInput) (*model.Interval, error) {
	if in.Category != nil && !in.Category.Valid() {
		return nil, Invalid("category must be daily, monthly or yearly")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, Invalid("end_date must not be before start_date")
	}

	patch := model.IntervalPatch{
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Category:  in.Category,
	}

	err := s.intervals.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrIntervalNotFound) {
		return nil, NotFound("interval not found")
	}
	if err != nil {
		return nil, Internal("update interval", err)
	}

	return s.ByID(ctx, id)
}

func (s *IntervalService) Delete(ctx context.Context, id int64) error {
	err := s.intervals.Delete(ctx, id)
	if errors.Is(err, repository.ErrIntervalNotFound) {
		return NotFound("interval not found")
	}
	if err != nil {
		return Internal("delete interval", err)
	}

	slog.InfoContext(ctx, "interval deleted", "interval_id", id)
	return nil
}

// AttachGoal links a goal to an interval. The link starts incomplete.
func (s *IntervalService) AttachGoal(ctx context.Context, intervalID, goalID int64) (*model.Interval, error) {
	_, err := s.intervals.ByID(ctx, intervalID)
	if errors.Is(err, repository.ErrIntervalNotFound) {
		return nil, NotFound("interval not found")
	}
	if err != nil {
		return nil, Internal("load interval", err)
	}

	_, err = s.goals.ByID(ctx, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return nil, NotFound("goal not found")
	}
	if err != nil {
		return nil, Internal("load goal", err)
	}

	err = s.intervals.LinkGoal(ctx, intervalID, goalID)
	if errors.Is(err, repository.ErrDuplicateLink) {
		return nil, Conflict("goal already attached to interval")
	}
	if err != nil {
		return nil, Internal("attach goal", err)
	}

	return s.ByID(ctx, intervalID)
}

func (s *IntervalService) DetachGoal(ctx context.Context, intervalID, goalID int64) error {
	err := s.intervals.UnlinkGoal(ctx, intervalID, goalID)
	if errors.Is(err, repository.ErrLinkNotFound) {
		return NotFound("goal not attached to interval")
	}
	if err != nil {
		return Internal("detach goal", err)
	}
	return nil
}
