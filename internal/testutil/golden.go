package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// UpdateGoldenEnv rewrites golden files instead of comparing when set.
const UpdateGoldenEnv = "TASKPAD_UPDATE_GOLDEN"

// Golden compares got with testdata/<name>.golden in the calling package.
// A mismatch is reported as a line diff.
func Golden(t testing.TB, name string, got []byte) {
	t.Helper()
	path := filepath.Join("testdata", name+".golden")

	if os.Getenv(UpdateGoldenEnv) != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, got, 0o644))
		t.Logf("updated %s", path)
		return
	}

	want, err := os.ReadFile(path)
	require.NoErrorf(t, err, "missing golden file %s (set %s=1 to create it)", path, UpdateGoldenEnv)
	assert.Equal(t, string(want), string(got), "output differs from %s", path)
}

// GoldenString is Golden for string output.
func GoldenString(t testing.TB, name string, got string) {
	t.Helper()
	Golden(t, name, []byte(got))
}
