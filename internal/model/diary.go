package model

import (
	"time"
)

type DiaryEntry struct {
	ID                int64     `db:"id" json:"id"`
	UserID            int64     `db:"user_id" json:"user_id"`
	Title             string    `db:"title" json:"title"`
	Content           string    `db:"content" json:"content"`
	Mood              *string   `db:"mood" json:"mood"`
	MeditationMinutes int       `db:"meditation_minutes" json:"meditation_minutes"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`

	// Markdown-rendered content, populated on single-entry reads
	RenderedHTML string `db:"-" json:"rendered_html,omitempty"`
}
