package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDataDir_CreatesNestedDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "a", "b")

	got, err := EnsureDataDir(base)
	require.NoError(t, err)
	require.Equal(t, base, got)

	info, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestEnsureDataDir_Idempotent(t *testing.T) {
	base := t.TempDir()

	first, err := EnsureDataDir(base)
	require.NoError(t, err)
	second, err := EnsureDataDir(base)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
