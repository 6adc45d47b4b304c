package repository

import (
	"context"
	"time"

	"github.com/meditactive/meditactive/internal/gateway"
	"github.com/meditactive/meditactive/internal/model"
)

type MeditationRepository interface {
	Sessions(ctx context.Context, userID int64) ([]*model.MeditationSession, error)
	Stats(ctx context.Context, userID int64) (*model.MeditationStats, error)
	RecentDaily(ctx context.Context, userID int64, days int) ([]*model.DailyMeditation, error)
}

type meditationRepository struct {
	gw *gateway.Gateway
}

func NewMeditationRepository(gw *gateway.Gateway) MeditationRepository {
	return &meditationRepository{gw: gw}
}

func (r *meditationRepository) Sessions(ctx context.Context, userID int64) ([]*model.MeditationSession, error) {
	var sessions []*model.MeditationSession
	query := `SELECT * FROM meditation_sessions WHERE user_id = $1 ORDER BY completed_at DESC`

	err := r.gw.QueryMany(ctx, &sessions, query, userID)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *meditationRepository) Stats(ctx context.Context, userID int64) (*model.MeditationStats, error) {
	stats := &model.MeditationStats{}
	query := `SELECT COUNT(*) AS total_sessions,
	                 COALESCE(SUM(duration_minutes), 0) AS total_minutes,
	                 COALESCE(AVG(duration_minutes), 0) AS avg_duration,
	                 COALESCE(MAX(duration_minutes), 0) AS longest_session
	          FROM meditation_sessions
	          WHERE user_id = $1`

	err := r.gw.QueryOne(ctx, stats, query, userID)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// RecentDaily aggregates minutes per calendar day over the trailing window.
// The cutoff is computed in Go so the query stays portable across drivers.
func (r *meditationRepository) RecentDaily(ctx context.Context, userID int64, days int) ([]*model.DailyMeditation, error) {
	var daily []*model.DailyMeditation
	cutoff := time.Now().AddDate(0, 0, -days)

	query := `SELECT DATE(completed_at) AS date,
	                 SUM(duration_minutes) AS minutes
	          FROM meditation_sessions
	          WHERE user_id = $1 AND completed_at >= $2
	          GROUP BY DATE(completed_at)
	          ORDER BY date DESC`

	err := r.gw.QueryMany(ctx, &daily, query, userID, cutoff)
	if err != nil {
		return nil, err
	}

	return daily, nil
}
