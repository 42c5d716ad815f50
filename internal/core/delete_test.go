package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestSafeDeleteDryRunMeasuresOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.log")
	writeFile(t, path, 4096)

	freed, err := SafeDelete(path, true)
	require.NoError(t, err)
	assert.Equal(t, int64(4096), freed)

	// Dry run must leave the file in place.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSafeDeleteRemovesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.log")
	writeFile(t, path, 2048)

	freed, err := SafeDelete(path, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2048), freed)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSafeDeleteRemovesDirectoryRecursively(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "cache")
	require.NoError(t, os.MkdirAll(filepath.Join(sub, "nested"), 0o755))
	writeFile(t, filepath.Join(sub, "a"), 100)
	writeFile(t, filepath.Join(sub, "nested", "b"), 200)

	freed, err := SafeDelete(sub, false)
	require.NoError(t, err)
	assert.Equal(t, int64(300), freed)

	_, err = os.Stat(sub)
	assert.True(t, os.IsNotExist(err))
}

func TestSafeDeleteRefusesProtectedPaths(t *testing.T) {
	for _, path := range []string{"/", "/etc", "/home", "/var/..", "/usr/"} {
		_, err := SafeDelete(path, false)
		assert.Error(t, err, "must refuse %q", path)
	}
}

func TestSafeDeleteMissingPathIsBenign(t *testing.T) {
	// Repeating a delete against an already-deleted target is a no-op.
	freed, err := SafeDelete(filepath.Join(t.TempDir(), "gone"), false)
	assert.NoError(t, err)
	assert.Zero(t, freed)
}

func TestDirSizeSkipsSymlinkTargets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "real"), 512)
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "link")))

	// The link itself is not followed; only the real file counts.
	assert.Equal(t, int64(512), DirSize(dir))
}
