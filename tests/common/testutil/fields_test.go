//go:build unit

package testutil_test

import (
	"testing"

	"salon-scheduler/tests/common/testutil"

	"github.com/stretchr/testify/assert"
)

type line struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type cart struct {
	PaymentMethod string `json:"payment_method"`
	Lines         []line `json:"lines"`
}

func TestBody(t *testing.T) {
	dto := cart{PaymentMethod: "cash", Lines: []line{{ItemID: "a", Quantity: 1}, {ItemID: "b", Quantity: 2}}}

	testCases := []struct {
		name     string
		edits    []testutil.Edit
		expected map[string]any
	}{
		{
			name: "no edits mirrors the json encoding",
			expected: map[string]any{
				"payment_method": "cash",
				"lines": []any{
					map[string]any{"item_id": "a", "quantity": float64(1)},
					map[string]any{"item_id": "b", "quantity": float64(2)},
				},
			},
		},
		{
			name:  "drop a nested field and retype another",
			edits: []testutil.Edit{testutil.Drop("lines.0.quantity"), testutil.Set("lines.1.quantity", "two")},
			expected: map[string]any{
				"payment_method": "cash",
				"lines": []any{
					map[string]any{"item_id": "a"},
					map[string]any{"item_id": "b", "quantity": "two"},
				},
			},
		},
		{
			name:  "replace a whole element and drop a top level key",
			edits: []testutil.Edit{testutil.Set("lines.0", nil), testutil.Drop("payment_method")},
			expected: map[string]any{
				"lines": []any{
					nil,
					map[string]any{"item_id": "b", "quantity": float64(2)},
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, testutil.Body(t, dto, tc.edits...))
		})
	}
}
