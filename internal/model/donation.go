package model

import (
	"time"
)

// DonationType distinguishes planting a tree from supporting a project.
type DonationType string

const (
	DonationTree    DonationType = "tree"
	DonationProject DonationType = "donation"
)

func (t DonationType) Valid() bool {
	switch t {
	case DonationTree, DonationProject:
		return true
	}
	return false
}

type Donation struct {
	ID          int64        `db:"id" json:"id"`
	UserID      int64        `db:"user_id" json:"user_id"`
	Type        DonationType `db:"type" json:"type"`
	CoinsSpent  int64        `db:"coins_spent" json:"coins_spent"`
	ProjectName *string      `db:"project_name" json:"project_name"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
}

// DonationStat aggregates a user's donation history per type.
type DonationStat struct {
	Type       DonationType `db:"type" json:"type"`
	Count      int          `db:"count" json:"count"`
	TotalCoins int64        `db:"total_coins" json:"total_coins"`
}
