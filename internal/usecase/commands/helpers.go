package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/pkg/pgconv"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("salon-scheduler/internal/usecase/commands")

// runWithConcurrencyRetry retries fn once when it lost a race. A second loss is a conflict.
func runWithConcurrencyRetry(ctx context.Context, op string, fn func() error) error {
	err := shared.Classify(fn())
	if err == nil || !errs.Is(err, shared.ErrConcurrency) {
		return err
	}

	slog.WarnContext(ctx, "retrying after concurrent modification", "operation", op, "error", err.Error())
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	err = shared.Classify(fn())
	if err != nil && errs.Is(err, shared.ErrConcurrency) {
		return errs.Mark(errs.Wrap(err, op), shared.ErrConflict)
	}
	return err
}

type dayLock struct {
	staffID uuid.UUID
	date    string
}

// lockDays takes advisory locks in a stable order so two writers touching the same
// pair of days cannot deadlock.
func lockDays(ctx context.Context, tx shared.Tx, shopID uuid.UUID, locks ...dayLock) error {
	sort.Slice(locks, func(i, j int) bool {
		if locks[i].date != locks[j].date {
			return locks[i].date < locks[j].date
		}
		return locks[i].staffID.String() < locks[j].staffID.String()
	})
	var prev *dayLock
	for i := range locks {
		if prev != nil && *prev == locks[i] {
			continue
		}
		if err := tx.Locks().LockStaffDay(ctx, tx.DB(), shopID, locks[i].staffID, locks[i].date); err != nil {
			return err
		}
		prev = &locks[i]
	}
	return nil
}

func enqueue(ctx context.Context, tx shared.Tx, shopID uuid.UUID, kind string, payload any, runAt time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "marshal outbox payload")
	}
	return tx.Outbox().Enqueue(ctx, tx.DB(), shopID, kind, kind, body, runAt)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func dateKey(t time.Time, loc *time.Location) string {
	return pgconv.DateKey(t, loc)
}
