//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Body renders a request DTO as the generic JSON tree a client would send, then
// applies edits such as Drop("lines.0.quantity") to build malformed variants.
func Body(t *testing.T, dto any, edits ...Edit) map[string]any {
	t.Helper()

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	var tree map[string]any
	require.NoError(t, json.Unmarshal(raw, &tree))
	for _, edit := range edits {
		edit(t, tree)
	}
	return tree
}
