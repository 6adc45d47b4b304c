package model

import (
	"time"
)

// Interval is a user-defined date range to which goals are attached.
type Interval struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Category  Category  `db:"category" json:"category"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined from users on list/detail reads
	UserName  string `db:"user_name" json:"user_name,omitempty"`
	UserEmail string `db:"user_email" json:"user_email,omitempty"`

	// Populated by the batched goal lookup, never by the row scan
	Goals []*IntervalGoal `db:"-" json:"goals"`
}

// IntervalGoal is a goal as it appears within one interval, carrying the
// link's completion state. The link transitions incomplete to complete at
// most once; CompletedAt is set exactly once.
type IntervalGoal struct {
	Goal
	IntervalID  int64      `db:"interval_id" json:"-"`
	Completed   bool       `db:"completed" json:"completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at"`
}
