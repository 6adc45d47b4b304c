package model

import (
	"time"
)

// Goal is a predefined task template with a fixed coin reward. Goals are
// immutable during completion; users attach them to intervals via links.
type Goal struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Category    Category  `db:"category" json:"category"`
	CoinsReward int64     `db:"coins_reward" json:"coins_reward"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// GoalsByCategory groups goal templates for the categories listing.
type GoalsByCategory struct {
	Daily   []*Goal `json:"daily"`
	Monthly []*Goal `json:"monthly"`
	Yearly  []*Goal `json:"yearly"`
}
