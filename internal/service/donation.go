package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/meditactive/meditactive/internal/gateway"
	"github.com/meditactive/meditactive/internal/model"
	"github.com/meditactive/meditactive/internal/repository"
)

type DonationService struct {
	donations repository.DonationRepository
	gw        *gateway.Gateway
}

func NewDonationService(donations repository.DonationRepository, gw *gateway.Gateway) *DonationService {
	return &DonationService{donations: donations, gw: gw}
}

type DonationInput struct {
	Type        model.DonationType `json:"type"`
	Coins       int64              `json:"coins"`
	ProjectName *string            `json:"project_name"`
}

// DonationResult is the recorded donation plus the balance after the debit.
type DonationResult struct {
	Donation *model.Donation `json:"donation"`
	Balance  int64           `json:"coins"`
}

// Donate debits the user's coins and records the donation atomically. The
// debit is conditioned on a sufficient balance, so a concurrent spend can
// never push the balance below zero; losing that race reports insufficient
// funds rather than partial state.
func (s *DonationService) Donate(ctx context.Context, userID int64, in DonationInput) (*DonationResult, error) {
	if !in.Type.Valid() {
		return nil, Invalid("type must be tree or donation")
	}
	if in.Coins <= 0 {
		return nil, Invalid("coins must be positive")
	}
	if in.ProjectName != nil && strings.TrimSpace(*in.ProjectName) == "" {
		in.ProjectName = nil
	}

	var result *DonationResult

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
		n, err := q.Execute(ctx,
			`UPDATE users SET coins = coins - $1, updated_at = $2 WHERE id = $3 AND coins >= $1`,
			in.Coins, now, userID)
		if err != nil {
			return Internal("debit coins", err)
		}
		if n == 0 {
			return InsufficientFunds("not enough coins for this donation")
		}

		donationID, err := q.Insert(ctx, `
			INSERT INTO donations (user_id, type, coins_spent, project_name, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			userID, in.Type, in.Coins, in.ProjectName, now)
		if err != nil {
			return Internal("record donation", err)
		}

		var balance int64
		err = q.QueryOne(ctx, &balance, `SELECT coins FROM users WHERE id = $1`, userID)
		if err != nil {
			return Internal("read balance after debit", err)
		}

		result = &DonationResult{
			Donation: &model.Donation{
				ID:          donationID,
				UserID:      userID,
				Type:        in.Type,
				CoinsSpent:  in.Coins,
				ProjectName: in.ProjectName,
				CreatedAt:   now,
			},
			Balance: balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "donation recorded",
		"user_id", userID, "type", string(in.Type), "coins", in.Coins)

	return result, nil
}

func (s *DonationService) Donations(ctx context.Context, userID int64) ([]*model.Donation, error) {
	donations, err := s.donations.Donations(ctx, userID)
	if err != nil {
		return nil, Internal("list donations", err)
	}
	return donations, nil
}

func (s *DonationService) Stats(ctx context.Context, userID int64) ([]*model.DonationStat, error) {
	stats, err := s.donations.Stats(ctx, userID)
	if err != nil {
		return nil, Internal("load donation stats", err)
	}
	if stats == nil {
		stats = []*model.DonationStat{}
	}
	return stats, nil
}
