package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/meditactive/meditactive/internal/gateway"
	"github.com/meditactive/meditactive/internal/model"
	"github.com/meditactive/meditactive/internal/repository"
	"github.com/meditactive/meditactive/internal/validation"
)

// CoinOp selects how an AdjustCoins request is applied.
type CoinOp string

const (
	CoinAdd      CoinOp = "add"
	CoinSubtract CoinOp = "subtract"
	CoinSet      CoinOp = "set"
)

type UserService struct {
	users repository.UserRepository
	gw    *gateway.Gateway
}

func NewUserService(users repository.UserRepository, gw *gateway.Gateway) *UserService {
	return &UserService{users: users, gw: gw}
}

func (s *UserService) Users(ctx context.Context) ([]*model.User, error) {
	users, err := s.users.Users(ctx)
	if err != nil {
		return nil, Internal("list users", err)
	}
	return users, nil
}

func (s *UserService) ByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.ByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, NotFound("user not found")
	}
	if err != nil {
		return nil, Internal("load user", err)
	}
	return user, nil
}

type UserUpdateInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
}

func (s *UserService) Update(ctx context.Context, id int64, in UserUpdateInput) (*model.User, error) {
	patch := model.UserPatch{
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if err := validation.ValidateEmail(email); err != nil {
			return nil, Invalid(err.Error())
		}
		patch.Email = &email
	}

	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, Invalid(err.Error())
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, Internal("hash password", err)
		}
		hashed := string(hash)
		patch.PasswordHash = &hashed
	}

	err := s.users.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, NotFound("user not found")
	}
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, Conflict("email already registered")
	}
	if err != nil {
		return nil, Internal("update user", err)
	}

	return s.ByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := s.users.Delete(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return NotFound("user not found")
	}
	if err != nil {
		return Internal("delete user", err)
	}

	slog.InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}

// AdjustCoins mutates a user's balance inside a transaction. Subtractions
// are conditioned on a sufficient balance so concurrent spends cannot drive
// coins negative.
func (s *UserService) AdjustCoins(ctx context.Context, userID int64, op CoinOp, amount int64) (*model.User, error) {
	if amount < 0 {
		return nil, Invalid("amount must not be negative")
	}

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
		switch op {
		case CoinAdd:
			_, err = q.Execute(ctx,
				`UPDATE users SET coins = coins + $1, updated_at = $2 WHERE id = $3`,
				amount, now, userID)
		case CoinSubtract:
			var n int64
			n, err = q.Execute(ctx,
				`UPDATE users SET coins = coins - $1, updated_at = $2 WHERE id = $3 AND coins >= $1`,
				amount, now, userID)
			if err == nil && n == 0 {
				return InsufficientFunds("not enough coins")
			}
		case CoinSet:
			_, err = q.Execute(ctx,
				`UPDATE users SET coins = $1, updated_at = $2 WHERE id = $3`,
				amount, now, userID)
		default:
			return Invalid("operation must be add, subtract or set")
		}
		if err != nil {
			return Internal("adjust coins", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "coins adjusted", "user_id", userID, "op", string(op), "amount", amount)

	return s.ByID(ctx, userID)
}
