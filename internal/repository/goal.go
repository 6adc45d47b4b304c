package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/meditactive/meditactive/internal/gateway"
	"github.com/meditactive/meditactive/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Goal, error)
	Goals(ctx context.Context, category *model.Category) ([]*model.Goal, error)
	Update(ctx context.Context, id int64, patch model.GoalPatch) error
	Delete(ctx context.Context, id int64) error
}

type goalRepository struct {
	gw *gateway.Gateway
}

func NewGoalRepository(gw *gateway.Gateway) GoalRepository {
	return &goalRepository{gw: gw}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) (int64, error) {
	query := `INSERT INTO goals (name, description, category, coins_reward, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	return r.gw.Insert(ctx, query,
		goal.Name,
		goal.Description,
		goal.Category,
		goal.CoinsReward,
		time.Now(),
	)
}

func (r *goalRepository) ByID(ctx context.Context, id int64) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.gw.QueryOne(ctx, goal, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) Goals(ctx context.Context, category *model.Category) ([]*model.Goal, error) {
	var goals []*model.Goal

	query := `SELECT * FROM goals`
	var args []any
	if category != nil {
		query += ` WHERE category = $1`
		args = append(args, *category)
	}
	query += ` ORDER BY category, name`

	err := r.gw.QueryMany(ctx, &goals, query, args...)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, id int64, patch model.GoalPatch) error {
	cols, vals := patch.Columns()
	if len(cols) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE goals SET %s WHERE id = $%d`, setClause(cols, 1), len(cols)+1)
	vals = append(vals, id)

	rows, err := r.gw.Execute(ctx, query, vals...)
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM goals WHERE id = $1`

	rows, err := r.gw.Execute(ctx, query, id)
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
