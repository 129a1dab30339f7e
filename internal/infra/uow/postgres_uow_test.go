//go:build unit

package uow

import (
	"context"
	"testing"
	"time"

	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUoW(t *testing.T) (*PostgresUoW, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return &PostgresUoW{pool: mock, maxRetries: 3, base: time.Millisecond}, mock
}

var errBoom = errs.New("boom")

func TestPostgresUoW_Within(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		u, mock := newTestUoW(t)
		mock.ExpectBegin()
		mock.ExpectExec("pg_advisory_xact_lock").WithArgs(pgxmock.AnyArg()).WillReturnResult(pgxmock.NewResult("SELECT", 1))
		mock.ExpectCommit()

		err := u.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Locks().LockStaffDay(ctx, tx.DB(), uuid.New(), uuid.New(), "2025-03-14")
		})
		assert.NoError(t, err)
	})

	t.Run("rolls back and returns the fn error", func(t *testing.T) {
		u, mock := newTestUoW(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := u.Within(ctx, func(context.Context, shared.Tx) error { return errBoom })
		assert.True(t, errs.Is(err, errBoom))
		assert.False(t, errs.Is(err, shared.ErrTxCommit))
	})

	t.Run("commit failure is marked and not retried", func(t *testing.T) {
		u, mock := newTestUoW(t)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: "40001"})
		mock.ExpectRollback()

		calls := 0
		err := u.Within(ctx, func(context.Context, shared.Tx) error {
			calls++
			return nil
		})
		assert.True(t, errs.Is(err, shared.ErrTxCommit))
		assert.Equal(t, 1, calls)
	})

	t.Run("retries serialization failures", func(t *testing.T) {
		u, mock := newTestUoW(t)
		mock.ExpectBegin()
		mock.ExpectRollback()
		mock.ExpectBegin()
		mock.ExpectCommit()

		calls := 0
		err := u.Within(ctx, func(context.Context, shared.Tx) error {
			calls++
			if calls == 1 {
				return &pgconn.PgError{Code: "40001"}
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		u, mock := newTestUoW(t)
		u.maxRetries = 1
		for i := 0; i < 2; i++ {
			mock.ExpectBegin()
			mock.ExpectRollback()
		}

		err := u.Within(ctx, func(context.Context, shared.Tx) error {
			return &pgconn.PgError{Code: "40P01"}
		})
		assert.True(t, errs.Is(err, errMaxRetriesExceeded))
	})

	t.Run("begin failure", func(t *testing.T) {
		u, mock := newTestUoW(t)
		mock.ExpectBegin().WillReturnError(errBoom)

		err := u.Within(ctx, func(context.Context, shared.Tx) error { return nil })
		assert.True(t, errs.Is(err, errTransactionBegin))
	})
}

func TestPostgresUoW_WithinReadOnly(t *testing.T) {
	u, mock := newTestUoW(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1").WillReturnRows(mock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectCommit()

	err := u.WithinReadOnly(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		var n int
		return tx.QueryRow(ctx, "SELECT 1").Scan(&n)
	})
	assert.NoError(t, err)
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: true},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: true},
		{name: "wrapped", err: errs.Wrap(&pgconn.PgError{Code: "40001"}, "insert"), want: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: false},
		{name: "commit failure", err: errs.Mark(&pgconn.PgError{Code: "40001"}, shared.ErrTxCommit), want: false},
		{name: "plain error", err: errBoom, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 0; attempt < 3; attempt++ {
		want := time.Duration(1<<attempt) * base
		got := calculateBackoff(attempt, base)
		assert.GreaterOrEqual(t, got, want)
		assert.Less(t, got, want+want/5+1)
	}
}
