package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/meditactive/meditactive/internal/gateway"
)

// CompletionResult reports the outcome of marking a goal complete within an
// interval. Balance is the user's coin total after the reward was credited,
// read inside the same transaction.
type CompletionResult struct {
	IntervalID   int64 `json:"interval_id"`
	GoalID       int64 `json:"goal_id"`
	UserID       int64 `json:"user_id"`
	CoinsAwarded int64 `json:"coins_earned"`
	Balance      int64 `json:"coins"`
}

// CompletionService owns the completion-and-reward transaction. It talks to
// the gateway directly because the flip and the credit must share one
// transaction boundary.
type CompletionService struct {
	gw *gateway.Gateway
}

func NewCompletionService(gw *gateway.Gateway) *CompletionService {
	return &CompletionService{gw: gw}
}

// completionRow is the joined state needed to decide whether the flip is
// allowed and how much it pays.
type completionRow struct {
	UserID      int64 `db:"user_id"`
	CoinsReward int64 `db:"coins_reward"`
	Completed   bool  `db:"completed"`
}

// CompleteGoal marks the (interval, goal) link complete and credits the
// interval owner's coins, atomically. A missing link is NotFound, an
// already-completed link is Conflict, and either way no coins move. The flip
// itself is conditioned on completed = FALSE so two racing requests cannot
// both pay out.
func (s *CompletionService) CompleteGoal(ctx context.Context, intervalID, goalID int64) (*CompletionResult, error) {
	var result *CompletionResult

	err := s.gw.WithTransaction(ctx, func(q gateway.Querier) error {
		var row completionRow
		err := q.QueryOne(ctx, &row, `
			SELECT gi.user_id, g.coins_reward, ig.completed
			FROM interval_goals ig
			JOIN goal_intervals gi ON gi.id = ig.interval_id
			JOIN goals g ON g.id = ig.goal_id
			WHERE ig.interval_id = $1 AND ig.goal_id = $2`,
			intervalID, goalID)
		if errors.Is(err, sql.ErrNoRows) {
			return NotFound("goal not found in this interval")
		}
		if err != nil {
			return Internal("load completion state", err)
		}

		if row.Completed {
			return Conflict("goal already completed in this interval")
		}

		n, err := q.Execute(ctx, `
			UPDATE interval_goals
			SET completed = TRUE, completed_at = $1
			WHERE interval_id = $2 AND goal_id = $3 AND completed = FALSE`,
			time.Now(), intervalID, goalID)
		if err != nil {
			return Internal("mark goal completed", err)
		}
		if n == 0 {
			// Another request flipped the link between our read and write.
			return Conflict("goal already completed in this interval")
		}

		_, err = q.Execute(ctx, `
			UPDATE users
			SET coins = coins + $1, updated_at = $2
			WHERE id = $3`,
			row.CoinsReward, time.Now(), row.UserID)
		if err != nil {
			return Internal("credit goal reward", err)
		}

		var balance int64
		err = q.QueryOne(ctx, &balance, `SELECT coins FROM users WHERE id = $1`, row.UserID)
		if err != nil {
			return Internal("read balance after credit", err)
		}

		result = &CompletionResult{
			IntervalID:   intervalID,
			GoalID:       goalID,
			UserID:       row.UserID,
			CoinsAwarded: row.CoinsReward,
			Balance:      balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "goal completed",
		"interval_id", intervalID,
		"goal_id", goalID,
		"user_id", result.UserID,
		"coins_awarded", result.CoinsAwarded,
	)

	return result, nil
}
