//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Shop is a seeded tenant with two staff members, one service and one product.
type Shop struct {
	ID        uuid.UUID
	StaffID   uuid.UUID
	Staff2ID  uuid.UUID
	ServiceID uuid.UUID
	ProductID uuid.UUID
}

const (
	ServicePrice    = int64(5500)
	ServiceMinutes  = 60
	ProductPrice    = int64(2200)
	ProductStock    = 3
	ServiceMenuName = "Cut"
)

func SeedShop(t *testing.T, db DB) Shop {
	t.Helper()

	s := Shop{
		ID:        uuid.New(),
		StaffID:   uuid.New(),
		Staff2ID:  uuid.New(),
		ServiceID: uuid.New(),
		ProductID: uuid.New(),
	}
	ctx := context.Background()

	stmts := []struct {
		sql  string
		args []any
	}{
		{"INSERT INTO shops (id, name) VALUES ($1, $2)", []any{s.ID, "Salon " + s.ID.String()[:8]}},
		{"INSERT INTO staff (id, shop_id, name, role) VALUES ($1, $2, 'Aoi', 'stylist'), ($3, $2, 'Ren', 'assistant')", []any{s.StaffID, s.ID, s.Staff2ID}},
		{"INSERT INTO services (id, shop_id, name, price, duration_minutes, tax_rate) VALUES ($1, $2, $3, $4, $5, 0.10)", []any{s.ServiceID, s.ID, ServiceMenuName, ServicePrice, ServiceMinutes}},
		{"INSERT INTO products (id, shop_id, name, price, tax_rate, stock, category) VALUES ($1, $2, 'Shampoo', $3, 0.10, $4, 'care')", []any{s.ProductID, s.ID, ProductPrice, ProductStock}},
	}
	for _, st := range stmts {
		_, err := db.Exec(ctx, st.sql, st.args...)
		require.NoError(t, err, st.sql)
	}
	return s
}

func ProductStockOf(t *testing.T, db DB, productID uuid.UUID) int {
	t.Helper()

	var stock int
	err := db.QueryRow(context.Background(), "SELECT stock FROM products WHERE id = $1", productID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

func CountOutbox(t *testing.T, db DB, shopID uuid.UUID, kind string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM outbox_events WHERE shop_id = $1 AND kind = $2", shopID, kind).Scan(&n)
	require.NoError(t, err)
	return n
}

// NotesOn returns the bulletin contents of a business day in posting order.
func NotesOn(t *testing.T, db DB, shopID uuid.UUID, date string) []string {
	t.Helper()

	rows, err := db.Query(context.Background(),
		"SELECT content FROM staff_notes WHERE shop_id = $1 AND date = $2::date ORDER BY created_at, id", shopID, date)
	require.NoError(t, err)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		require.NoError(t, rows.Scan(&c))
		out = append(out, c)
	}
	require.NoError(t, rows.Err())
	return out
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every application table.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
