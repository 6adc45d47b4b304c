package gateway_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/meditactive/meditactive/internal/db"
	"github.com/meditactive/meditactive/internal/gateway"
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

func insertUser(t *testing.T, gw *gateway.Gateway, email string) int64 {
	t.Helper()

	id, err := gw.Insert(context.Background(), `
		INSERT INTO users (email, password_hash, first_name, last_name, coins)
		VALUES ($1, 'x', 'Test', 'User', 0)`, email)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}

func TestInsertReturnsID(t *testing.T) {
	gw := newTestGateway(t)

	first := insertUser(t, gw, "a@example.com")
	second := insertUser(t, gw, "b@example.com")

	if first == 0 {
		t.Fatal("expected non-zero id")
	}
	if second <= first {
		t.Errorf("second id = %d, want > %d", second, first)
	}
}

func TestQueryOneNoRows(t *testing.T) {
	gw := newTestGateway(t)

	var email string
	err := gw.QueryOne(context.Background(), &email, `SELECT email FROM users WHERE id = $1`, 999)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestExecuteReportsAffectedRows(t *testing.T) {
	gw := newTestGateway(t)
	id := insertUser(t, gw, "a@example.com")

	n, err := gw.Execute(context.Background(), `UPDATE users SET coins = 5 WHERE id = $1`, id)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if n != 1 {
		t.Errorf("affected = %d, want 1", n)
	}

	n, err = gw.Execute(context.Background(), `UPDATE users SET coins = 5 WHERE id = $1`, 999)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if n != 0 {
		t.Errorf("affected = %d, want 0", n)
	}
}

func TestTransactionCommit(t *testing.T) {
	gw := newTestGateway(t)
	id := insertUser(t, gw, "a@example.com")

	err := gw.WithTransaction(context.Background(), func(q gateway.Querier) error {
		_, err := q.Execute(context.Background(), `UPDATE users SET coins = coins + 10 WHERE id = $1`, id)
		return err
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}

	var coins int64
	err = gw.QueryOne(context.Background(), &coins, `SELECT coins FROM users WHERE id = $1`, id)
	if err != nil {
		t.Fatalf("query coins: %v", err)
	}
	if coins != 10 {
		t.Errorf("coins = %d, want 10", coins)
	}
}

func TestTransactionRollbackOnError(t *testing.T) {
	gw := newTestGateway(t)
	id := insertUser(t, gw, "a@example.com")

	wantErr := errors.New("boom")
	err := gw.WithTransaction(context.Background(), func(q gateway.Querier) error {
		_, execErr := q.Execute(context.Background(), `UPDATE users SET coins = coins + 10 WHERE id = $1`, id)
		if execErr != nil {
			t.Fatalf("execute in tx: %v", execErr)
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}

	var coins int64
	err = gw.QueryOne(context.Background(), &coins, `SELECT coins FROM users WHERE id = $1`, id)
	if err != nil {
		t.Fatalf("query coins: %v", err)
	}
	if coins != 0 {
		t.Errorf("coins = %d, want 0 after rollback", coins)
	}
}

func TestTransactionRollbackOnPanic(t *testing.T) {
	gw := newTestGateway(t)
	id := insertUser(t, gw, "a@example.com")

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		_ = gw.WithTransaction(context.Background(), func(q gateway.Querier) error {
			_, _ = q.Execute(context.Background(), `UPDATE users SET coins = coins + 10 WHERE id = $1`, id)
			panic("boom")
		})
	}()

	var coins int64
	err := gw.QueryOne(context.Background(), &coins, `SELECT coins FROM users WHERE id = $1`, id)
	if err != nil {
		t.Fatalf("query coins: %v", err)
	}
	if coins != 0 {
		t.Errorf("coins = %d, want 0 after panic rollback", coins)
	}
}
