package model

import (
	"time"
)

type MeditationSession struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	CompletedAt     time.Time `db:"completed_at" json:"completed_at"`
}

// DailyMeditation is one day's aggregated meditation time.
type DailyMeditation struct {
	Date    string `db:"date" json:"date"`
	Minutes int    `db:"minutes" json:"minutes"`
}

type MeditationStats struct {
	TotalSessions  int     `db:"total_sessions" json:"total_sessions"`
	TotalMinutes   int     `db:"total_minutes" json:"total_minutes"`
	AvgDuration    float64 `db:"avg_duration" json:"avg_duration"`
	LongestSession int     `db:"longest_session" json:"longest_session"`

	RecentSessions []*DailyMeditation `db:"-" json:"recent_sessions"`
}
