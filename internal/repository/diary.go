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
	ErrDiaryEntryNotFound = errors.New("diary entry not found")
)

type DiaryRepository interface {
	Create(ctx context.Context, entry *model.DiaryEntry) (int64, error)
	ByID(ctx context.Context, userID, id int64) (*model.DiaryEntry, error)
	Entries(ctx context.Context, userID int64) ([]*model.DiaryEntry, error)
	Update(ctx context.Context, userID, id int64, patch model.DiaryEntryPatch) error
	Delete(ctx context.Context, userID, id int64) error
}

type diaryRepository struct {
	gw *gateway.Gateway
}

func NewDiaryRepository(gw *gateway.Gateway) DiaryRepository {
	return &diaryRepository{gw: gw}
}

func (r *diaryRepository) Create(ctx context.Context, entry *model.DiaryEntry) (int64, error) {
	query := `INSERT INTO diary_entries (user_id, title, content, mood, meditation_minutes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	return r.gw.Insert(ctx, query,
		entry.UserID,
		entry.Title,
		entry.Content,
		entry.Mood,
		entry.MeditationMinutes,
		now,
		now,
	)
}

func (r *diaryRepository) ByID(ctx context.Context, userID, id int64) (*model.DiaryEntry, error) {
	entry := &model.DiaryEntry{}
	query := `SELECT * FROM diary_entries WHERE id = $1 AND user_id = $2`

	err := r.gw.QueryOne(ctx, entry, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDiaryEntryNotFound
	}

	return entry, err
}

func (r *diaryRepository) Entries(ctx context.Context, userID int64) ([]*model.DiaryEntry, error) {
	var entries []*model.DiaryEntry
	query := `SELECT * FROM diary_entries WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.gw.QueryMany(ctx, &entries, query, userID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *diaryRepository) Update(ctx context.Context, userID, id int64, patch model.DiaryEntryPatch) error {
	cols, vals := patch.Columns()
	if len(cols) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE diary_entries SET %s, updated_at = $%d WHERE id = $%d AND user_id = $%d`,
		setClause(cols, 1), len(cols)+1, len(cols)+2, len(cols)+3)
	vals = append(vals, time.Now(), id, userID)

	rows, err := r.gw.Execute(ctx, query, vals...)
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrDiaryEntryNotFound
	}

	return nil
}

func (r *diaryRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM diary_entries WHERE id = $1 AND user_id = $2`

	rows, err := r.gw.Execute(ctx, query, id, userID)
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrDiaryEntryNotFound
	}

	return nil
}
