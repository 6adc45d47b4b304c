package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/meditactive/meditactive/internal/db"
	"github.com/meditactive/meditactive/internal/gateway"
	"github.com/meditactive/meditactive/internal/model"
)

func newTestGateway(t *testing.T) *gateway.Gateway {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	database, err := db.Init("sqlite", dsn)
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return gateway.New(database)
}

func createTestUser(t *testing.T, gw *gateway.Gateway, email string) int64 {
	t.Helper()

	users := NewUserRepository(gw)
	id, err := users.Create(context.Background(), &model.User{
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return id
}

func createTestGoal(t *testing.T, gw *gateway.Gateway, name string, reward int64) int64 {
	t.Helper()

	goals := NewGoalRepository(gw)
	id, err := goals.Create(context.Background(), &model.Goal{
		Name:        name,
		Category:    model.CategoryDaily,
		CoinsReward: reward,
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	return id
}

func createTestInterval(t *testing.T, gw *gateway.Gateway, userID int64) int64 {
	t.Helper()

	intervals := NewIntervalRepository(gw)
	id, err := intervals.Create(context.Background(), &model.Interval{
		UserID:    userID,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Category:  model.CategoryMonthly,
	})
	if err != nil {
		t.Fatalf("create interval: %v", err)
	}
	return id
}

func TestSetClause(t *testing.T) {
	got := setClause([]string{"name", "category"}, 3)
	want := "name = $3, category = $4"
	if got != want {
		t.Errorf("setClause = %q, want %q", got, want)
	}
}
