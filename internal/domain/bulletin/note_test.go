//go:build unit

package bulletin_test

import (
	"strings"
	"testing"
	"time"

	"salon-scheduler/internal/domain/bulletin"
	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNote(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	shopID := uuid.New()

	testCases := []struct {
		name     string
		date     string
		content  string
		expected string
		errIs    error
	}{
		{name: "trims content", date: "2025-03-14", content: "  towels arrive at noon ", expected: "towels arrive at noon"},
		{name: "blank content", date: "2025-03-14", content: " \n ", errIs: bulletin.ErrEmptyNote},
		{name: "missing date", content: "hello", errIs: bulletin.ErrDateRequired},
		{name: "too long", date: "2025-03-14", content: strings.Repeat("x", bulletin.MaxNoteRunes+1), errIs: bulletin.ErrNoteTooLong},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := bulletin.NewNote(shopID, tc.date, tc.content, now)
			if tc.errIs != nil {
				assert.True(t, errs.Is(err, tc.errIs))
				assert.Nil(t, n)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, n.ID())
			assert.Equal(t, shopID, n.ShopID())
			assert.Equal(t, tc.date, n.Date())
			assert.Equal(t, tc.expected, n.Content())
			assert.Equal(t, now, n.CreatedAt())
		})
	}
}
