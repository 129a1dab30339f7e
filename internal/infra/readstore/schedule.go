package readstore

import (
	"context"
	"time"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/pgconv"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const appointmentViewColumns = `a.id, a.shop_id, a.staff_id, s.name, a.customer_id, a.customer_name, a.service_id,
	a.menu_name, a.start_time, a.end_time, a.status, a.overlap_override, a.version, a.created_at, a.updated_at`

const (
	findAppointmentViewSQL = `
		SELECT ` + appointmentViewColumns + `
		FROM appointments a
		JOIN staff s ON s.id = a.staff_id
		WHERE a.shop_id = $1 AND a.id = $2`

	// Overlap with [from, to) rather than containment so appointments crossing the
	// range edges are listed.
	listAppointmentViewsSQL = `
		SELECT ` + appointmentViewColumns + `
		FROM appointments a
		JOIN staff s ON s.id = a.staff_id
		WHERE a.shop_id = $1
		  AND ($2::uuid IS NULL OR a.staff_id = $2)
		  AND a.start_time < $4 AND a.end_time > $3
		  AND a.status <> 'cancelled'
		ORDER BY a.start_time, a.id`

	listStaffSQL = `
		SELECT id, name, role
		FROM staff
		WHERE shop_id = $1
		ORDER BY name, id`

	staffHolidaysSQL = `
		SELECT staff_id
		FROM staff_holidays
		WHERE shop_id = $1 AND date = $2::date`

	listNotesSQL = `
		SELECT id, to_char(date, 'YYYY-MM-DD'), content, created_at
		FROM staff_notes
		WHERE shop_id = $1 AND date = $2::date
		ORDER BY created_at, id`
)

type ScheduleReadStore struct {
	db db.DBTX
}

func NewScheduleReadStore(db db.DBTX) *ScheduleReadStore {
	return &ScheduleReadStore{db: db}
}

func (r *ScheduleReadStore) FindAppointment(ctx context.Context, shopID, id uuid.UUID) (*queries.AppointmentView, error) {
	v, err := scanAppointmentView(r.db.QueryRow(ctx, findAppointmentViewSQL, shopID, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get appointment view", err)
	}
	return v, nil
}

func (r *ScheduleReadStore) ListAppointments(ctx context.Context, shopID uuid.UUID, staffID *uuid.UUID, from, to time.Time) ([]*queries.AppointmentView, error) {
	rows, err := r.db.Query(ctx, listAppointmentViewsSQL, shopID, staffID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", err)
	}
	defer rows.Close()

	var out []*queries.AppointmentView
	for rows.Next() {
		v, err := scanAppointmentView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment view", err, infra.KindDBFailure)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate appointments", err)
	}
	return out, nil
}

func (r *ScheduleReadStore) ListStaff(ctx context.Context, shopID uuid.UUID) ([]queries.StaffView, error) {
	rows, err := r.db.Query(ctx, listStaffSQL, shopID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list staff", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.StaffView, error) {
		var s queries.StaffView
		err := row.Scan(&s.ID, &s.Name, &s.Role)
		return s, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan staff", err)
	}
	return out, nil
}

// StaffHolidays returns the staff members of shopID who are off on date.
func (r *ScheduleReadStore) StaffHolidays(ctx context.Context, shopID uuid.UUID, date string) (map[uuid.UUID]bool, error) {
	rows, err := r.db.Query(ctx, staffHolidaysSQL, shopID, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list holidays", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan holidays", err)
	}

	out := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *ScheduleReadStore) ListNotes(ctx context.Context, shopID uuid.UUID, date string) ([]queries.NoteView, error) {
	rows, err := r.db.Query(ctx, listNotesSQL, shopID, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notes", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.NoteView, error) {
		var n queries.NoteView
		err := row.Scan(&n.ID, &n.Date, &n.Content, &n.CreatedAt)
		return n, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan notes", err)
	}
	return out, nil
}

func scanAppointmentView(row pgx.Row) (*queries.AppointmentView, error) {
	var v queries.AppointmentView
	err := row.Scan(&v.ID, &v.ShopID, &v.StaffID, &v.StaffName, &v.CustomerID, &v.CustomerName, &v.ServiceID,
		&v.MenuName, &v.StartTime, &v.EndTime, &v.Status, &v.Override, &v.Version, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
