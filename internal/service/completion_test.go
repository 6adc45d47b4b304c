package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/meditactive/meditactive/internal/gateway"
	"github.com/meditactive/meditactive/internal/service"
)

func TestCompleteGoal(t *testing.T) {
	gw := newTestGateway(t)
	completion := service.NewCompletionService(gw)

	userID := seedUser(t, gw, "mario@example.com", 100)
	goalID := seedGoal(t, gw, "Stretch", 20)
	intervalID := seedInterval(t, gw, userID)
	linkGoal(t, gw, intervalID, goalID)

	result, err := completion.CompleteGoal(context.Background(), intervalID, goalID)
	if err != nil {
		t.Fatalf("CompleteGoal: %v", err)
	}

	if result.CoinsAwarded != 20 {
		t.Errorf("coins awarded = %d, want 20", result.CoinsAwarded)
	}
	if result.Balance != 120 {
		t.Errorf("balance = %d, want 120", result.Balance)
	}
	if result.UserID != userID {
		t.Errorf("user id = %d, want %d", result.UserID, userID)
	}
	if coins := userCoins(t, gw, userID); coins != 120 {
		t.Errorf("stored coins = %d, want 120", coins)
	}

	var completed bool
	err = gw.QueryOne(context.Background(), &completed,
		`SELECT completed FROM interval_goals WHERE interval_id = $1 AND goal_id = $2`,
		intervalID, goalID)
	if err != nil {
		t.Fatalf("read link: %v", err)
	}
	if !completed {
		t.Error("link should be completed")
	}
}

func TestCompleteGoalMissingLink(t *testing.T) {
	gw := newTestGateway(t)
	completion := service.NewCompletionService(gw)

	userID := seedUser(t, gw, "mario@example.com", 100)
	intervalID := seedInterval(t, gw, userID)

	_, err := completion.CompleteGoal(context.Background(), intervalID, 999)
	if service.KindOf(err) != service.KindNotFound {
		t.Errorf("kind = %v, want KindNotFound (err: %v)", service.KindOf(err), err)
	}
	if coins := userCoins(t, gw, userID); coins != 100 {
		t.Errorf("coins = %d, want 100", coins)
	}
}

// Completing the same goal twice must pay out exactly once.
func TestCompleteGoalTwice(t *testing.T) {
	gw := newTestGateway(t)
	completion := service.NewCompletionService(gw)

	userID := seedUser(t, gw, "mario@example.com", 0)
	goalID := seedGoal(t, gw, "Stretch", 20)
	intervalID := seedInterval(t, gw, userID)
	linkGoal(t, gw, intervalID, goalID)

	_, err := completion.CompleteGoal(context.Background(), intervalID, goalID)
	if err != nil {
		t.Fatalf("first CompleteGoal: %v", err)
	}

	_, err = completion.CompleteGoal(context.Background(), intervalID, goalID)
	if service.KindOf(err) != service.KindConflict {
		t.Errorf("kind = %v, want KindConflict (err: %v)", service.KindOf(err), err)
	}
	if coins := userCoins(t, gw, userID); coins != 20 {
		t.Errorf("coins = %d, want 20 after double completion attempt", coins)
	}
}

func newMockGateway(t *testing.T) (*gateway.Gateway, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	return gateway.New(sqlx.NewDb(mockDB, "sqlmock")), mock
}

// A request that reads the link as incomplete but loses the conditional
// update to a concurrent completion must end with Conflict and a rollback,
// never a second payout.
func TestCompleteGoalRaceLost(t *testing.T) {
	gw, mock := newMockGateway(t)
	completion := service.NewCompletionService(gw)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT gi.user_id, g.coins_reward, ig.completed")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "coins_reward", "completed"}).
			AddRow(int64(7), int64(20), false))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE interval_goals")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := completion.CompleteGoal(context.Background(), 1, 2)
	if service.KindOf(err) != service.KindConflict {
		t.Errorf("kind = %v, want KindConflict (err: %v)", service.KindOf(err), err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// A failure while crediting the reward must roll the flip back too.
func TestCompleteGoalCreditFailureRollsBack(t *testing.T) {
	gw, mock := newMockGateway(t)
	completion := service.NewCompletionService(gw)

	creditErr := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT gi.user_id, g.coins_reward, ig.completed")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "coins_reward", "completed"}).
			AddRow(int64(7), int64(20), false))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE interval_goals")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WillReturnError(creditErr)
	mock.ExpectRollback()

	_, err := completion.CompleteGoal(context.Background(), 1, 2)
	if err == nil {
		t.Fatal("expected error")
	}
	if service.KindOf(err) != service.KindInternal {
		t.Errorf("kind = %v, want KindInternal", service.KindOf(err))
	}
	if !errors.Is(err, creditErr) {
		t.Errorf("err chain should contain the credit failure, got: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
