package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/meditactive/meditactive/internal/gateway"
	"github.com/meditactive/meditactive/internal/model"
	"github.com/meditactive/meditactive/internal/repository"
)

// recentDays is the trailing window for the per-day stats breakdown.
const recentDays = 7

// SessionResult is a saved session plus the coins it earned and the balance
// after crediting them.
type SessionResult struct {
	Session     *model.MeditationSession `json:"session"`
	CoinsEarned int64                    `json:"coins_earned"`
	Balance     int64                    `json:"coins"`
}

type MeditationService struct {
	sessions repository.MeditationRepository
	gw       *gateway.Gateway
}

func NewMeditationService(sessions repository.MeditationRepository, gw *gateway.Gateway) *MeditationService {
	return &MeditationService{sessions: sessions, gw: gw}
}

// SaveSession records a finished meditation and credits one coin per full
// minute, in a single transaction. The duration is client-reported; the
// server only validates its range.
func (s *MeditationService) SaveSession(ctx context.Context, userID int64, durationSeconds int) (*SessionResult, error) {
	if durationSeconds <= 0 {
		return nil, Invalid("duration must be positive")
	}
	if durationSeconds > 24*60*60 {
		return nil, Invalid("duration exceeds one day")
	}

	minutes := durationSeconds / 60
	var result *SessionResult

	err := s.gw.WithTransaction(ctx, func(q gateway.Querier) error {
		var exists int
		err := q.QueryOne(ctx, &exists, `SELECT 1 FROM users WHERE id = $1`, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return NotFound("user not found")
		}
		if err != nil {
			return Internal("load user", err)
		}

		now := time.Now()
		sessionID, err := q.Insert(ctx, `
			INSERT INTO meditation_sessions (user_id, duration_minutes, completed_at)
			VALUES ($1, $2, $3)`,
			userID, minutes, now)
		if err != nil {
			return Internal("save session", err)
		}

		if minutes > 0 {
			_, err = q.Execute(ctx,
				`UPDATE users SET coins = coins + $1, updated_at = $2 WHERE id = $3`,
				int64(minutes), now, userID)
			if err != nil {
				return Internal("credit meditation reward", err)
			}
		}

		var balance int64
		err = q.QueryOne(ctx, &balance, `SELECT coins FROM users WHERE id = $1`, userID)
		if err != nil {
			return Internal("read balance after credit", err)
		}

		result = &SessionResult{
			Session: &model.MeditationSession{
				ID:              sessionID,
				UserID:          userID,
				DurationMinutes: minutes,
				CompletedAt:     now,
			},
			CoinsEarned: int64(minutes),
			Balance:     balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "meditation session saved",
		"user_id", userID, "minutes", minutes, "coins_earned", result.CoinsEarned)

	return result, nil
}

func (s *MeditationService) Sessions(ctx context.Context, userID int64) ([]*model.MeditationSession, error) {
	sessions, err := s.sessions.Sessions(ctx, userID)
	if err != nil {
		return nil, Internal("list sessions", err)
	}
	return sessions, nil
}

// Stats aggregates a user's meditation history plus a per-day breakdown of
// the last week.
func (s *MeditationService) Stats(ctx context.Context, userID int64) (*model.MeditationStats, error) {
	stats, err := s.sessions.Stats(ctx, userID)
	if err != nil {
		return nil, Internal("load stats", err)
	}

	recent, err := s.sessions.RecentDaily(ctx, userID, recentDays)
	if err != nil {
		return nil, Internal("load recent sessions", err)
	}
	if recent == nil {
		recent = []*model.DailyMeditation{}
	}
	stats.RecentSessions = recent

	return stats, nil
}
