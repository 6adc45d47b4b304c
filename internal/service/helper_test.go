package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/meditactive/meditactive/internal/db"
	"github.com/meditactive/meditactive/internal/gateway"
	"github.com/meditactive/meditactive/internal/model"
	"github.com/meditactive/meditactive/internal/repository"
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

func seedUser(t *testing.T, gw *gateway.Gateway, email string, coins int64) int64 {
	t.Helper()

	id, err := gw.Insert(context.Background(), `
		INSERT INTO users (email, password_hash, first_name, last_name, coins)
		VALUES ($1, 'hash', 'Test', 'User', $2)`, email, coins)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

func seedGoal(t *testing.T, gw *gateway.Gateway, name string, reward int64) int64 {
	t.Helper()

	goals := repository.NewGoalRepository(gw)
	id, err := goals.Create(context.Background(), &model.Goal{
		Name:        name,
		Category:    model.CategoryDaily,
		CoinsReward: reward,
	})
	if err != nil {
		t.Fatalf("seed goal: %v", err)
	}
	return id
}

func seedInterval(t *testing.T, gw *gateway.Gateway, userID int64) int64 {
	t.Helper()

	intervals := repository.NewIntervalRepository(gw)
	id, err := intervals.Create(context.Background(), &model.Interval{
		UserID:    userID,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Category:  model.CategoryMonthly,
	})
	if err != nil {
		t.Fatalf("seed interval: %v", err)
	}
	return id
}

func linkGoal(t *testing.T, gw *gateway.Gateway, intervalID, goalID int64) {
	t.Helper()

	intervals := repository.NewIntervalRepository(gw)
	err := intervals.LinkGoal(context.Background(), intervalID, goalID)
	if err != nil {
		t.Fatalf("link goal: %v", err)
	}
}

func userCoins(t *testing.T, gw *gateway.Gateway, userID int64) int64 {
	t.Helper()

	var coins int64
	err := gw.QueryOne(context.Background(), &coins, `SELECT coins FROM users WHERE id = $1`, userID)
	if err != nil {
		t.Fatalf("read coins: %v", err)
	}
	return coins
}
