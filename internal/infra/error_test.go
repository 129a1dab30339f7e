//go:build unit

package infra_test

import (
	"testing"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		kind     []infra.RepositoryErrorKind
		expected infra.RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, expected: infra.KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, expected: infra.KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, expected: infra.KindForeignKeyViolated},
		{name: "exclusion violation", err: &pgconn.PgError{Code: "23P01"}, expected: infra.KindConflict},
		{name: "other server error", err: &pgconn.PgError{Code: "57014"}, expected: infra.KindDBFailure},
		{name: "wrapped no rows", err: errs.Wrap(pgx.ErrNoRows, "scan"), expected: infra.KindNotFound},
		{name: "explicit kind wins", err: errs.New("zero rows"), kind: []infra.RepositoryErrorKind{infra.KindConflict}, expected: infra.KindConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := infra.WrapRepoErr("lookup failed", tc.err, tc.kind...)

			assert.True(t, infra.IsKind(err, tc.expected))
			assert.Contains(t, err.Error(), "lookup failed")
			assert.True(t, errs.Is(err, tc.err), "cause must stay reachable")
		})
	}
}

func TestIsKind_ThroughWrapping(t *testing.T) {
	err := errs.Wrap(infra.WrapRepoErr("find appointment", pgx.ErrNoRows), "reschedule")

	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	assert.False(t, infra.IsKind(err, infra.KindDBFailure))
	assert.False(t, infra.IsKind(errs.New("plain"), infra.KindNotFound))
}
