//go:build unit || e2e

package testutil

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Edit changes one field of a JSON tree built by Body.
type Edit func(t *testing.T, tree map[string]any)

// Set replaces the value at a dotted path. Numeric segments index arrays.
func Set(path string, value any) Edit {
	return func(t *testing.T, tree map[string]any) {
		t.Helper()
		parent, last := walk(t, tree, path)
		assign(t, parent, last, value, false)
	}
}

// Drop removes the field at a dotted path, as if the client omitted it.
func Drop(path string) Edit {
	return func(t *testing.T, tree map[string]any) {
		t.Helper()
		parent, last := walk(t, tree, path)
		assign(t, parent, last, nil, true)
	}
}

func walk(t *testing.T, tree map[string]any, path string) (any, string) {
	t.Helper()
	segments := strings.Split(path, ".")
	var node any = tree
	for _, seg := range segments[:len(segments)-1] {
		switch n := node.(type) {
		case map[string]any:
			node = n[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			require.NoError(t, err, "path %q: %q is not an index", path, seg)
			require.Less(t, i, len(n), "path %q: index out of range", path)
			node = n[i]
		default:
			require.Failf(t, "bad path", "path %q stops at %q", path, seg)
		}
	}
	return node, segments[len(segments)-1]
}

func assign(t *testing.T, parent any, key string, value any, remove bool) {
	t.Helper()
	switch n := parent.(type) {
	case map[string]any:
		if remove {
			delete(n, key)
			return
		}
		n[key] = value
	case []any:
		i, err := strconv.Atoi(key)
		require.NoError(t, err)
		require.Less(t, i, len(n))
		require.False(t, remove, "cannot drop an array element")
		n[i] = value
	default:
		require.Failf(t, "bad path", "cannot set %q on %T", key, parent)
	}
}
