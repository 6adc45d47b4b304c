package repository

import (
	"context"

	"github.com/meditactive/meditactive/internal/gateway"
	"github.com/meditactive/meditactive/internal/model"
)

type DonationRepository interface {
	Donations(ctx context.Context, userID int64) ([]*model.Donation, error)
	Stats(ctx context.Context, userID int64) ([]*model.DonationStat, error)
}

type donationRepository struct {
	gw *gateway.Gateway
}

func NewDonationRepository(gw *gateway.Gateway) DonationRepository {
	return &donationRepository{gw: gw}
}

func (r *donationRepository) Donations(ctx context.Context, userID int64) ([]*model.Donation, error) {
	var donations []*model.Donation
	query := `SELECT * FROM donations WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.gw.QueryMany(ctx, &donations, query, userID)
	if err != nil {
		return nil, err
	}

	return donations, nil
}

func (r *donationRepository) Stats(ctx context.Context, userID int64) ([]*model.DonationStat, error) {
	var stats []*model.DonationStat
	query := `SELECT type,
	                 COUNT(*) AS count,
	                 COALESCE(SUM(coins_spent), 0) AS total_coins
	          FROM donations
	          WHERE user_id = $1
	          GROUP BY type
	          ORDER BY type`

	err := r.gw.QueryMany(ctx, &stats, query, userID)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
