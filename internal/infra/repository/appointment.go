package repository

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const appointmentColumns = `id, shop_id, staff_id, customer_id, customer_name, service_id, menu_name,
	start_time, end_time, status, overlap_override, version, created_at, updated_at`

const (
	insertAppointmentSQL = `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	selectAppointmentForUpdateSQL = `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE shop_id = $1 AND id = $2
		FOR UPDATE`

	listActiveForStaffDaySQL = `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE shop_id = $1 AND staff_id = $2 AND status = 'active'
		  AND start_time < $4 AND end_time > $3
		ORDER BY start_time, id`

	updateAppointmentSQL = `
		UPDATE appointments
		SET staff_id = $3, customer_id = $4, start_time = $5, end_time = $6, status = $7,
		    overlap_override = $8, version = version + 1, updated_at = $9
		WHERE shop_id = $1 AND id = $2 AND version = $10 AND status = 'active'`
)

type AppointmentRepository struct{}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{}
}

func (r *AppointmentRepository) Create(ctx context.Context, tx db.DBTX, a *appointment.Appointment) error {
	_, err := tx.Exec(ctx, insertAppointmentSQL,
		a.ID(), a.ShopID(), a.StaffID(), a.CustomerID(), a.CustomerName(), a.ServiceID(), a.MenuName(),
		a.Slot().Start(), a.Slot().End(), string(a.Status()), a.Override(), a.Version(), a.CreatedAt(), a.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, shopID, id uuid.UUID) (*appointment.Appointment, error) {
	a, err := scanAppointment(tx.QueryRow(ctx, selectAppointmentForUpdateSQL, shopID, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock appointment", err)
	}
	return a, nil
}

func (r *AppointmentRepository) ListActiveForStaffDay(ctx context.Context, tx db.DBTX, shopID, staffID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
	rows, err := tx.Query(ctx, listActiveForStaffDaySQL, shopID, staffID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list staff day", err)
	}
	defer rows.Close()

	var out []*appointment.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment", err, infra.KindDBFailure)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate staff day", err)
	}
	return out, nil
}

// Update reports KindConflict when the row moved on since expectedVersion or left the active state.
func (r *AppointmentRepository) Update(ctx context.Context, tx db.DBTX, a *appointment.Appointment, expectedVersion int) error {
	tag, err := tx.Exec(ctx, updateAppointmentSQL,
		a.ShopID(), a.ID(), a.StaffID(), a.CustomerID(), a.Slot().Start(), a.Slot().End(),
		string(a.Status()), a.Override(), a.UpdatedAt(), expectedVersion,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

func scanAppointment(row pgx.Row) (*appointment.Appointment, error) {
	var (
		id, shopID, staffID, serviceID uuid.UUID
		customerID                     *uuid.UUID
		customerName, menuName, status string
		start, end, createdAt, updated time.Time
		override                       bool
		version                        int
	)
	if err := row.Scan(&id, &shopID, &staffID, &customerID, &customerName, &serviceID, &menuName,
		&start, &end, &status, &override, &version, &createdAt, &updated); err != nil {
		return nil, err
	}

	slot, err := appointment.NewTimeSlot(start, end)
	if err != nil {
		return nil, err
	}
	st, err := appointment.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return appointment.Reconstruct(id, shopID, staffID, customerID, customerName, serviceID, menuName,
		slot, st, override, version, createdAt, updated), nil
}
