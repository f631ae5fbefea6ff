package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "content-cache")

	got, err := EnsureDir(target)
	require.NoError(t, err)
	require.Equal(t, target, got)

	fi, err := os.Stat(target)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "cache")

	_, err := EnsureDir(target)
	require.NoError(t, err)
	_, err = EnsureDir(target)
	require.NoError(t, err)
}

func TestEnsureSubDir(t *testing.T) {
	tmp := t.TempDir()

	got, err := EnsureSubDir(tmp, "previews")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "previews"), got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}
