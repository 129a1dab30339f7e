//go:build unit

package repository

import (
	"context"
	"testing"

	"salon-scheduler/internal/infra"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_Create(t *testing.T) {
	shopID, id := uuid.New(), uuid.New()
	mock := newMockDB(t)
	mock.ExpectQuery("INSERT INTO customers").WithArgs(shopID, "Hanako Yamada").
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(id))

	got, err := NewCustomerRepository().Create(context.Background(), mock, shopID, " Hanako Yamada ")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestCustomerRepository_Exists(t *testing.T) {
	shopID, id := uuid.New(), uuid.New()

	for _, exists := range []bool{true, false} {
		mock := newMockDB(t)
		mock.ExpectQuery("SELECT EXISTS").WithArgs(shopID, id).
			WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(exists))

		got, err := NewCustomerRepository().Exists(context.Background(), mock, shopID, id)
		require.NoError(t, err)
		assert.Equal(t, exists, got)
	}

	t.Run("query failure", func(t *testing.T) {
		mock := newMockDB(t)
		mock.ExpectQuery("SELECT EXISTS").WithArgs(shopID, id).WillReturnError(assert.AnError)

		_, err := NewCustomerRepository().Exists(context.Background(), mock, shopID, id)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
