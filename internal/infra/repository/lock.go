package repository

import (
	"context"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"

	"github.com/google/uuid"
)

// Transaction scoped, released on commit or rollback.
const lockStaffDaySQL = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

type ScheduleLocker struct{}

func NewScheduleLocker() *ScheduleLocker {
	return &ScheduleLocker{}
}

func (l *ScheduleLocker) LockStaffDay(ctx context.Context, tx db.DBTX, shopID, staffID uuid.UUID, date string) error {
	if _, err := tx.Exec(ctx, lockStaffDaySQL, StaffDayLockKey(shopID, staffID, date)); err != nil {
		return infra.WrapRepoErr("failed to lock staff day", err)
	}
	return nil
}

func StaffDayLockKey(shopID, staffID uuid.UUID, date string) string {
	return "schedule:" + shopID.String() + ":" + staffID.String() + ":" + date
}
