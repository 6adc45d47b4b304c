package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/meditactive/meditactive/internal/gateway"
	"github.com/meditactive/meditactive/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (int64, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	Users(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, id int64, patch model.UserPatch) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	gw *gateway.Gateway
}

func NewUserRepository(gw *gateway.Gateway) UserRepository {
	return &userRepository{gw: gw}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (int64, error) {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, coins, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	id, err := r.gw.Insert(ctx, query,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Coins,
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}

	return id, nil
}

func (r *userRepository) ByID(ctx context.Context, id int64) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.gw.QueryOne(ctx, user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.gw.QueryOne(ctx, user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) Users(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	query := `SELECT * FROM users ORDER BY created_at DESC`

	err := r.gw.QueryMany(ctx, &users, query)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id int64, patch model.UserPatch) error {
	cols, vals := patch.Columns()
	if len(cols) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE users SET %s, updated_at = $%d WHERE id = $%d`,
		setClause(cols, 1), len(cols)+1, len(cols)+2)
	vals = append(vals, time.Now(), id)

	rows, err := r.gw.Execute(ctx, query, vals...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	rows, err := r.gw.Execute(ctx, query, id)
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
