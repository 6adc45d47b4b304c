package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/meditactive/meditactive/internal/model"
	"github.com/meditactive/meditactive/internal/repository"
	"github.com/meditactive/meditactive/internal/service"
)

func TestIntervalCreateWithGoals(t *testing.T) {
	gw := newTestGateway(t)
	intervals := service.NewIntervalService(
		repository.NewIntervalRepository(gw),
		repository.NewGoalRepository(gw),
		repository.NewUserRepository(gw),
	)

	userID := seedUser(t, gw, "mario@example.com", 0)
	stretch := seedGoal(t, gw, "Stretch", 5)
	read := seedGoal(t, gw, "Read", 10)

	// 999 does not exist and is skipped
	interval, err := intervals.Create(context.Background(), service.IntervalInput{
		UserID:    userID,
		StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		Category:  model.CategoryMonthly,
		GoalIDs:   []int64{stretch, read, 999},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(interval.Goals) != 2 {
		t.Errorf("goals = %d, want 2", len(interval.Goals))
	}
	for _, g := range interval.Goals {
		if g.Completed {
			t.Errorf("goal %d starts completed", g.ID)
		}
	}
}

func TestIntervalCreateRejectsBackwardsRange(t *testing.T) {
	gw := newTestGateway(t)
	intervals := service.NewIntervalService(
		repository.NewIntervalRepository(gw),
		repository.NewGoalRepository(gw),
		repository.NewUserRepository(gw),
	)

	userID := seedUser(t, gw, "mario@example.com", 0)

	_, err := intervals.Create(context.Background(), service.IntervalInput{
		UserID:    userID,
		StartDate: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Category:  model.CategoryMonthly,
	})
	if service.KindOf(err) != service.KindInvalid {
		t.Errorf("kind = %v, want KindInvalid (err: %v)", service.KindOf(err), err)
	}
}

func TestIntervalListAttachesGoalsToEveryRow(t *testing.T) {
	gw := newTestGateway(t)
	intervals := service.NewIntervalService(
		repository.NewIntervalRepository(gw),
		repository.NewGoalRepository(gw),
		repository.NewUserRepository(gw),
	)

	userID := seedUser(t, gw, "mario@example.com", 0)
	goalID := seedGoal(t, gw, "Stretch", 5)

	withGoal := seedInterval(t, gw, userID)
	linkGoal(t, gw, withGoal, goalID)
	seedInterval(t, gw, userID)

	list, err := intervals.Intervals(context.Background(), repository.IntervalFilter{UserID: &userID})
	if err != nil {
		t.Fatalf("Intervals: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("intervals = %d, want 2", len(list))
	}
	for _, iv := range list {
		if iv.Goals == nil {
			t.Errorf("interval %d: goals is nil, want slice", iv.ID)
		}
	}
}

func TestAttachGoalTwiceConflicts(t *testing.T) {
	gw := newTestGateway(t)
	intervals := service.NewIntervalService(
		repository.NewIntervalRepository(gw),
		repository.NewGoalRepository(gw),
		repository.NewUserRepository(gw),
	)

	userID := seedUser(t, gw, "mario@example.com", 0)
	intervalID := seedInterval(t, gw, userID)
	goalID := seedGoal(t, gw, "Stretch", 5)

	_, err := intervals.AttachGoal(context.Background(), intervalID, goalID)
	if err != nil {
		t.Fatalf("AttachGoal: %v", err)
	}

	_, err = intervals.AttachGoal(context.Background(), intervalID, goalID)
	if service.KindOf(err) != service.KindConflict {
		t.Errorf("kind = %v, want KindConflict (err: %v)", service.KindOf(err), err)
	}
}

func TestDetachGoalMissing(t *testing.T) {
	gw := newTestGateway(t)
	intervals := service.NewIntervalService(
		repository.NewIntervalRepository(gw),
		repository.NewGoalRepository(gw),
		repository.NewUserRepository(gw),
	)

	userID := seedUser(t, gw, "mario@example.com", 0)
	intervalID := seedInterval(t, gw, userID)

	err := intervals.DetachGoal(context.Background(), intervalID, 999)
	if service.KindOf(err) != service.KindNotFound {
		t.Errorf("kind = %v, want KindNotFound (err: %v)", service.KindOf(err), err)
	}
}
