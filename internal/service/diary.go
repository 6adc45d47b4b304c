package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/meditactive/meditactive/internal/markdown"
	"github.com/meditactive/meditactive/internal/model"
	"github.com/meditactive/meditactive/internal/repository"
)

var validMoods = map[string]bool{
	"calm": true, "happy": true, "neutral": true, "anxious": true, "sad": true,
}

type DiaryService struct {
	entries  repository.DiaryRepository
	renderer *markdown.Renderer
}

func NewDiaryService(entries repository.DiaryRepository, renderer *markdown.Renderer) *DiaryService {
	return &DiaryService{entries: entries, renderer: renderer}
}

type DiaryEntryInput struct {
	Title             string  `json:"title"`
	Content           string  `json:"content"`
	Mood              *string `json:"mood"`
	MeditationMinutes int     `json:"meditation_minutes"`
}

func (s *DiaryService) Create(ctx context.Context, userID int64, in DiaryEntryInput) (*model.DiaryEntry, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, Invalid("title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, Invalid("content is required")
	}
	if in.Mood != nil && !validMoods[*in.Mood] {
		return nil, Invalid("mood must be one of calm, happy, neutral, anxious, sad")
	}
	if in.MeditationMinutes < 0 {
		return nil, Invalid("meditation_minutes must not be negative")
	}

	entry := &model.DiaryEntry{
		UserID:            userID,
		Title:             strings.TrimSpace(in.Title),
		Content:           in.Content,
		Mood:              in.Mood,
		MeditationMinutes: in.MeditationMinutes,
	}

	id, err := s.entries.Create(ctx, entry)
	if err != nil {
		return nil, Internal("create diary entry", err)
	}

	slog.InfoContext(ctx, "diary entry created", "entry_id", id, "user_id", userID)

	return s.ByID(ctx, userID, id)
}

// ByID loads one entry and renders its markdown body to HTML. List reads
// skip rendering; only the detail view needs it.
func (s *DiaryService) ByID(ctx context.Context, userID, id int64) (*model.DiaryEntry, error) {
	entry, err := s.entries.ByID(ctx, userID, id)
	if errors.Is(err, repository.ErrDiaryEntryNotFound) {
		return nil, NotFound("diary entry not found")
	}
	if err != nil {
		return nil, Internal("load diary entry", err)
	}

	html, err := s.renderer.Render([]byte(entry.Content))
	if err != nil {
		slog.WarnContext(ctx, "diary markdown render failed", "entry_id", id, "error", err)
	} else {
		entry.RenderedHTML = string(html)
	}

	return entry, nil
}

func (s *DiaryService) Entries(ctx context.Context, userID int64) ([]*model.DiaryEntry, error) {
	entries, err := s.entries.Entries(ctx, userID)
	if err != nil {
		return nil, Internal("list diary entries", err)
	}
	return entries, nil
}

type DiaryEntryUpdateInput struct {
	Title             *string `json:"title"`
	Content           *string `json:"content"`
	Mood              *string `json:"mood"`
	MeditationMinutes *int    `json:"meditation_minutes"`
}

func (s *DiaryService) Update(ctx context.Context, userID, id int64, in DiaryEntryUpdateInput) (*model.DiaryEntry, error) {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, Invalid("title must not be empty")
	}
	if in.Mood != nil && !validMoods[*in.Mood] {
		return nil, Invalid("mood must be one of calm, happy, neutral, anxious, sad")
	}
	if in.MeditationMinutes != nil && *in.MeditationMinutes < 0 {
		return nil, Invalid("meditation_minutes must not be negative")
	}

	patch := model.DiaryEntryPatch{
		Title:             in.Title,
		Content:           in.Content,
		Mood:              in.Mood,
		MeditationMinutes: in.MeditationMinutes,
	}

	err := s.entries.Update(ctx, userID, id, patch)
	if errors.Is(err, repository.ErrDiaryEntryNotFound) {
		return nil, NotFound("diary entry not found")
	}
	if err != nil {
		return nil, Internal("update diary entry", err)
	}

	return s.ByID(ctx, userID, id)
}

func (s *DiaryService) Delete(ctx context.Context, userID, id int64) error {
	err := s.entries.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrDiaryEntryNotFound) {
		return NotFound("diary entry not found")
	}
	if err != nil {
		return Internal("delete diary entry", err)
	}

	slog.InfoContext(ctx, "diary entry deleted", "entry_id", id, "user_id", userID)
	return nil
}
