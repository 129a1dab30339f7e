package repository

import (
	"context"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"

	"github.com/google/uuid"
)

const (
	isHolidaySQL = `
		SELECT EXISTS (
			SELECT 1 FROM staff_holidays
			WHERE shop_id = $1 AND staff_id = $2 AND date = $3::date
		)`

	markHolidaySQL = `
		INSERT INTO staff_holidays (shop_id, staff_id, date)
		VALUES ($1, $2, $3::date)
		ON CONFLICT (shop_id, staff_id, date) DO NOTHING`

	clearHolidaySQL = `
		DELETE FROM staff_holidays
		WHERE shop_id = $1 AND staff_id = $2 AND date = $3::date`
)

type HolidayRepository struct{}

func NewHolidayRepository() *HolidayRepository {
	return &HolidayRepository{}
}

func (r *HolidayRepository) IsHoliday(ctx context.Context, tx db.DBTX, shopID, staffID uuid.UUID, date string) (bool, error) {
	var holiday bool
	if err := tx.QueryRow(ctx, isHolidaySQL, shopID, staffID, date).Scan(&holiday); err != nil {
		return false, infra.WrapRepoErr("failed to check holiday", err)
	}
	return holiday, nil
}

// Mark is idempotent.
func (r *HolidayRepository) Mark(ctx context.Context, tx db.DBTX, shopID, staffID uuid.UUID, date string) error {
	if _, err := tx.Exec(ctx, markHolidaySQL, shopID, staffID, date); err != nil {
		return infra.WrapRepoErr("failed to mark holiday", err)
	}
	return nil
}

// Clear is idempotent; clearing a working day is not an error.
func (r *HolidayRepository) Clear(ctx context.Context, tx db.DBTX, shopID, staffID uuid.UUID, date string) error {
	if _, err := tx.Exec(ctx, clearHolidaySQL, shopID, staffID, date); err != nil {
		return infra.WrapRepoErr("failed to clear holiday", err)
	}
	return nil
}
