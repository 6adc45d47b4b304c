package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/meditactive/meditactive/internal/gateway"
	"github.com/meditactive/meditactive/internal/model"
)

var (
	ErrIntervalNotFound = errors.New("interval not found")
	ErrDuplicateLink    = errors.New("goal already attached to interval")
	ErrLinkNotFound     = errors.New("goal not attached to interval")
)

// IntervalFilter narrows interval listings. Nil fields match everything.
type IntervalFilter struct {
	UserID    *int64
	GoalID    *int64
	StartFrom *time.Time
	EndUntil  *time.Time
	Category  *model.Category
}

type IntervalRepository interface {
	Create(ctx context.Context, interval *model.Interval) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Interval, error)
	Intervals(ctx context.Context, filter IntervalFilter) ([]*model.Interval, error)
	Update(ctx context.Context, id int64, patch model.IntervalPatch) error
	Delete(ctx context.Context, id int64) error
	LinkGoal(ctx context.Context, intervalID, goalID int64) error
	UnlinkGoal(ctx context.Context, intervalID, goalID int64) error
	GoalsByInterval(ctx context.Context, intervalIDs []int64) (map[int64][]*model.IntervalGoal, error)
}

type intervalRepository struct {
	gw *gateway.Gateway
}

func NewIntervalRepository(gw *gateway.Gateway) IntervalRepository {
	return &intervalRepository{gw: gw}
}

func (r *intervalRepository) Create(ctx context.Context, interval *model.Interval) (int64, error) {
	query := `INSERT INTO goal_intervals (user_id, start_date, end_date, category, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	return r.gw.Insert(ctx, query,
		interval.UserID,
		interval.StartDate,
		interval.EndDate,
		interval.Category,
		time.Now(),
	)
}

func (r *intervalRepository) ByID(ctx context.Context, id int64) (*model.Interval, error) {
	interval := &model.Interval{}
	query := `SELECT gi.*,
	                 u.first_name || ' ' || u.last_name AS user_name,
	                 u.email AS user_email
	          FROM goal_intervals gi
	          JOIN users u ON u.id = gi.user_id
	          WHERE gi.id = $1`

	err := r.gw.QueryOne(ctx, interval, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrIntervalNotFound
	}

	return interval, err
}

func (r *intervalRepository) Intervals(ctx context.Context, filter IntervalFilter) ([]*model.Interval, error) {
	var intervals []*model.Interval

	query := `SELECT gi.*,
	                 u.first_name || ' ' || u.last_name AS user_name,
	                 u.email AS user_email
	          FROM goal_intervals gi
	          JOIN users u ON u.id = gi.user_id`

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.UserID != nil {
		conds = append(conds, "gi.user_id = "+arg(*filter.UserID))
	}
	if filter.GoalID != nil {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM interval_goals ig
			WHERE ig.interval_id = gi.id AND ig.goal_id = `+arg(*filter.GoalID)+")")
	}
	if filter.StartFrom != nil {
		conds = append(conds, "gi.start_date >= "+arg(*filter.StartFrom))
	}
	if filter.EndUntil != nil {
		conds = append(conds, "gi.end_date <= "+arg(*filter.EndUntil))
	}
	if filter.Category != nil {
		conds = append(conds, "gi.category = "+arg(*filter.Category))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY gi.start_date DESC, gi.id DESC"

	err := r.gw.QueryMany(ctx, &intervals, query, args...)
	if err != nil {
		return nil, err
	}

	return intervals, nil
}

func (r *intervalRepository) Update(ctx context.Context, id int64, patch model.IntervalPatch) error {
	cols, vals := patch.Columns()
	if len(cols) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE goal_intervals SET %s WHERE id = $%d`, setClause(cols, 1), len(cols)+1)
	vals = append(vals, id)

	rows, err := r.gw.Execute(ctx, query, vals...)
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrIntervalNotFound
	}

	return nil
}

func (r *intervalRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM goal_intervals WHERE id = $1`

	rows, err := r.gw.Execute(ctx, query, id)
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrIntervalNotFound
	}

	return nil
}

func (r *intervalRepository) LinkGoal(ctx context.Context, intervalID, goalID int64) error {
	query := `INSERT INTO interval_goals (interval_id, goal_id, completed)
	          VALUES ($1, $2, FALSE)`

	_, err := r.gw.Execute(ctx, query, intervalID, goalID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateLink
		}
		return err
	}

	return nil
}

func (r *intervalRepository) UnlinkGoal(ctx context.Context, intervalID, goalID int64) error {
	query := `DELETE FROM interval_goals WHERE interval_id = $1 AND goal_id = $2`

	rows, err := r.gw.Execute(ctx, query, intervalID, goalID)
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrLinkNotFound
	}

	return nil
}

// GoalsByInterval loads the attached goals for a batch of intervals in one
// query. Every requested id appears as a key in the result, mapped to an
// empty slice when the interval has no goals, so callers can index without a
// presence check. No query is issued for an empty id list.
func (r *intervalRepository) GoalsByInterval(ctx context.Context, intervalIDs []int64) (map[int64][]*model.IntervalGoal, error) {
	byInterval := make(map[int64][]*model.IntervalGoal, len(intervalIDs))
	for _, id := range intervalIDs {
		byInterval[id] = []*model.IntervalGoal{}
	}
	if len(intervalIDs) == 0 {
		return byInterval, nil
	}

	query, args, err := sqlx.In(`
		SELECT g.*, ig.interval_id, ig.completed, ig.completed_at
		FROM interval_goals ig
		JOIN goals g ON g.id = ig.goal_id
		WHERE ig.interval_id IN (?)
		ORDER BY ig.interval_id, g.name`, intervalIDs)
	if err != nil {
		return nil, fmt.Errorf("expand interval id list: %w", err)
	}

	var goals []*model.IntervalGoal
	err = r.gw.QueryMany(ctx, &goals, r.gw.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	for _, g := range goals {
		byInterval[g.IntervalID] = append(byInterval[g.IntervalID], g)
	}

	return byInterval, nil
}
