package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirs(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "a", "b", "console.db")

	require.NoError(t, EnsureParentDir(path))

	fi, err := os.Stat(filepath.Join(base, "a", "b"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestEnsureParentDir_NoDirPart(t *testing.T) {
	require.NoError(t, EnsureParentDir("console.db"))
	require.NoError(t, EnsureParentDir(":memory:"))
	require.NoError(t, EnsureParentDir(""))
}

func TestFileSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "avatar.png")
	require.NoError(t, os.WriteFile(path, make([]byte, 1234), 0o600))

	n, err := FileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), n)

	_, err = FileSize(dir)
	require.Error(t, err)

	_, err = FileSize(filepath.Join(dir, "missing"))
	require.Error(t, err)
}
