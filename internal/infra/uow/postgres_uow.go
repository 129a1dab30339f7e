package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/infra/repository"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/pkg/pgconv"
	"salon-scheduler/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool       db.Pool
	maxRetries int
	base       time.Duration
}

func NewPostgresUoW(pool db.Pool) shared.UnitOfWork {
	return &PostgresUoW{
		pool:       pool,
		maxRetries: 3,
		base:       100 * time.Millisecond,
	}
}

// ReadCommitted is enough: the staff-day advisory lock serialises schedule writers
// and row locks cover the appointment and stock updates.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, newPgTx(pgxTx))
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, shared.ErrTxCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, u.maxRetries) {
			if attempt == u.maxRetries && isRetryableError(err) {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, u.base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, db db.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

// A failed commit is never retried: the server may have applied it.
func isRetryableError(err error) bool {
	if errs.Is(err, shared.ErrTxCommit) {
		return false
	}
	switch pgconv.PgCode(err) {
	case pgconv.CodeSerializationFailure, pgconv.CodeDeadlockDetected:
		return true
	default:
		return false
	}
}

// pgTx hands out stateless repositories bound to one pgx transaction.
type pgTx struct {
	dbtx db.DBTX

	appointments *repository.AppointmentRepository
	holidays     *repository.HolidayRepository
	catalog      *repository.CatalogRepository
	customers    *repository.CustomerRepository
	sales        *repository.SaleRepository
	outbox       *repository.OutboxRepository
	bulletin     *repository.BulletinRepository
	locks        *repository.ScheduleLocker
}

func newPgTx(dbtx db.DBTX) *pgTx {
	return &pgTx{
		dbtx:         dbtx,
		appointments: repository.NewAppointmentRepository(),
		holidays:     repository.NewHolidayRepository(),
		catalog:      repository.NewCatalogRepository(),
		customers:    repository.NewCustomerRepository(),
		sales:        repository.NewSaleRepository(),
		outbox:       repository.NewOutboxRepository(),
		bulletin:     repository.NewBulletinRepository(),
		locks:        repository.NewScheduleLocker(),
	}
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Appointments() shared.AppointmentRepository {
	return t.appointments
}

func (t *pgTx) Holidays() shared.HolidayRepository {
	return t.holidays
}

func (t *pgTx) Catalog() shared.CatalogRepository {
	return t.catalog
}

func (t *pgTx) Customers() shared.CustomerRepository {
	return t.customers
}

func (t *pgTx) Sales() shared.SaleRepository {
	return t.sales
}

func (t *pgTx) Outbox() shared.OutboxRepository {
	return t.outbox
}

func (t *pgTx) Bulletin() shared.BulletinRepository {
	return t.bulletin
}

func (t *pgTx) Locks() shared.ScheduleLocker {
	return t.locks
}
