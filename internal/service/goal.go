package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/meditactive/meditactive/internal/model"
	"github.com/meditactive/meditactive/internal/repository"
)

type GoalService struct {
	goals repository.GoalRepository
}

func NewGoalService(goals repository.GoalRepository) *GoalService {
	return &GoalService{goals: goals}
}

type GoalInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    model.Category `json:"category"`
	CoinsReward *int64         `json:"coins_reward"`
}

const defaultCoinsReward = 10

func (s *GoalService) Create(ctx context.Context, in GoalInput) (*model.Goal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, Invalid("name is required")
	}
	if !in.Category.Valid() {
		return nil, Invalid("category must be daily, monthly or yearly")
	}

	reward := int64(defaultCoinsReward)
	if in.CoinsReward != nil {
		if *in.CoinsReward <= 0 {
			return nil, Invalid("coins_reward must be positive")
		}
		reward = *in.CoinsReward
	}

	goal := &model.Goal{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		CoinsReward: reward,
	}

	id, err := s.goals.Create(ctx, goal)
	if err != nil {
		return nil, Internal("create goal", err)
	}

	slog.InfoContext(ctx, "goal created", "goal_id", id, "category", string(in.Category))

	return s.ByID(ctx, id)
}

func (s *GoalService) ByID(ctx context.Context, id int64) (*model.Goal, error) {
	goal, err := s.goals.ByID(ctx, id)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return nil, NotFound("goal not found")
	}
	if err != nil {
		return nil, Internal("load goal", err)
	}
	return goal, nil
}

func (s *GoalService) Goals(ctx context.Context, category *model.Category) ([]*model.Goal, error) {
	if category != nil && !category.Valid() {
		return nil, Invalid("category must be daily, monthly or yearly")
	}

	goals, err := s.goals.Goals(ctx, category)
	if err != nil {
		return nil, Internal("list goals", err)
	}
	return goals, nil
}

// ByCategory groups the full catalog into the three recurrence buckets.
func (s *GoalService) ByCategory(ctx context.Context) (*model.GoalsByCategory, error) {
	goals, err := s.goals.Goals(ctx, nil)
	if err != nil {
		return nil, Internal("list goals", err)
	}

	grouped := &model.GoalsByCategory{
		Daily:   []*model.Goal{},
		Monthly: []*model.Goal{},
		Yearly:  []*model.Goal{},
	}
	for _, g := range goals {
		switch g.Category {
		case model.CategoryDaily:
			grouped.Daily = append(grouped.Daily, g)
		case model.CategoryMonthly:
			grouped.Monthly = append(grouped.Monthly, g)
		case model.CategoryYearly:
			grouped.Yearly = append(grouped.Yearly, g)
		}
	}
	return grouped, nil
}

type GoalUpdateInput struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Category    *model.Category `json:"category"`
	CoinsReward *int64          `json:"coins_reward"`
}

func (s *GoalService) Update(ctx context.Context, id int64, in GoalUpdateInput) (*model.Goal, error) {
	if in.Category != nil && !in.Category.Valid() {
		return nil, Invalid("category must be daily, monthly or yearly")
	}
	if in.CoinsReward != nil && *in.CoinsReward <= 0 {
		return nil, Invalid("coins_reward must be positive")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, Invalid("name must not be empty")
	}

	patch := model.GoalPatch{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		CoinsReward: in.CoinsReward,
	}

	err := s.goals.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return nil, NotFound("goal not found")
	}
	if err != nil {
		return nil, Internal("update goal", err)
	}

	return s.ByID(ctx, id)
}

func (s *GoalService) Delete(ctx context.Context, id int64) error {
	err := s.goals.Delete(ctx, id)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return NotFound("goal not found")
	}
	if err != nil {
		return Internal("delete goal", err)
	}

	slog.InfoContext(ctx, "goal deleted", "goal_id", id)
	return nil
}
