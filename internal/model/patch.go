package model

import (
	"time"
)

// Patch types express partial updates as explicit optional fields instead of
// splicing SET clauses from whatever a request happens to contain. Columns
// returns column names and values in declaration order; nil fields are
// skipped. An empty column list means there is nothing to update.

type UserPatch struct {
	Email        *string
	FirstName    *string
	LastName     *string
	PasswordHash *string
}

func (p UserPatch) Columns() ([]string, []any) {
	var cols []string
	var vals []any
	if p.Email != nil {
		cols = append(cols, "email")
		vals = append(vals, *p.Email)
	}
	if p.FirstName != nil {
		cols = append(cols, "first_name")
		vals = append(vals, *p.FirstName)
	}
	if p.LastName != nil {
		cols = append(cols, "last_name")
		vals = append(vals, *p.LastName)
	}
	if p.PasswordHash != nil {
		cols = append(cols, "password_hash")
		vals = append(vals, *p.PasswordHash)
	}
	return cols, vals
}

type GoalPatch struct {
	Name        *string
	Description *string
	Category    *Category
	CoinsReward *int64
}

func (p GoalPatch) Columns() ([]string, []any) {
	var cols []string
	var vals []any
	if p.Name != nil {
		cols = append(cols, "name")
		vals = append(vals, *p.Name)
	}
	if p.Description != nil {
		cols = append(cols, "description")
		vals = append(vals, *p.Description)
	}
	if p.Category != nil {
		cols = append(cols, "category")
		vals = append(vals, *p.Category)
	}
	if p.CoinsReward != nil {
		cols = append(cols, "coins_reward")
		vals = append(vals, *p.CoinsReward)
	}
	return cols, vals
}

type IntervalPatch struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  *Category
}

func (p IntervalPatch) Columns() ([]string, []any) {
	var cols []string
	var vals []any
	if p.StartDate != nil {
		cols = append(cols, "start_date")
		vals = append(vals, *p.StartDate)
	}
	if p.EndDate != nil {
		cols = append(cols, "end_date")
		vals = append(vals, *p.EndDate)
	}
	if p.Category != nil {
		cols = append(cols, "category")
		vals = append(vals, *p.Category)
	}
	return cols, vals
}

type DiaryEntryPatch struct {
	Title             *string
	Content           *string
	Mood              *string
	MeditationMinutes *int
}

func (p DiaryEntryPatch) Columns() ([]string, []any) {
	var cols []string
	var vals []any
	if p.Title != nil {
		cols = append(cols, "title")
		vals = append(vals, *p.Title)
	}
	if p.Content != nil {
		cols = append(cols, "content")
		vals = append(vals, *p.Content)
	}
	if p.Mood != nil {
		cols = append(cols, "mood")
		vals = append(vals, *p.Mood)
	}
	if p.MeditationMinutes != nil {
		cols = append(cols, "meditation_minutes")
		vals = append(vals, *p.MeditationMinutes)
	}
	return cols, vals
}
