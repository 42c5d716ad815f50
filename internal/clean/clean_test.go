package clean

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/debmole/internal/report"
)

func tmpFile(t *testing.T, dir, name string, size int) report.Item {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return report.Item{Path: path, Size: int64(size)}
}

func TestRemoveItemsDryRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	items := []report.Item{
		tmpFile(t, dir, "a.log", 100),
		tmpFile(t, dir, "b.log", 200),
	}

	sum := RemoveItems(items, true)

	assert.Equal(t, int64(300), sum.Freed)
	assert.Equal(t, 2, sum.Deleted)
	assert.Equal(t, 0, sum.Errors)
	for _, it := range items {
		_, err := os.Stat(it.Path)
		assert.NoError(t, err)
	}
}

func TestRemoveItemsContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	items := []report.Item{
		tmpFile(t, dir, "a.log", 100),
		{Path: "/etc", Size: 1},
		tmpFile(t, dir, "b.log", 200),
	}

	sum := RemoveItems(items, false)

	assert.Equal(t, 1, sum.Errors)
	assert.Equal(t, 2, sum.Deleted)
	assert.Equal(t, int64(300), sum.Freed)
	_, err := os.Stat(items[0].Path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(items[2].Path)
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveItemsMissingPathIsNotAnError(t *testing.T) {
	sum := RemoveItems([]report.Item{{Path: filepath.Join(t.TempDir(), "gone")}}, false)

	assert.Equal(t, 0, sum.Errors)
	assert.Equal(t, 1, sum.Deleted)
	assert.Zero(t, sum.Freed)
}

func TestSummaryAdd(t *testing.T) {
	var total Summary
	total.Add(Summary{Freed: 100, Deleted: 2})
	total.Add(Summary{Freed: 50, Deleted: 1, Errors: 1})

	assert.Equal(t, Summary{Freed: 150, Deleted: 3, Errors: 1}, total)
}

func TestTranslateExitErrorTruncatesOutput(t *testing.T) {
	exitErr := exec.Command("sh", "-c", "exit 100").Run()
	require.Error(t, exitErr)

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}

	err := translateExitError("apt-get", exitErr, long)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "apt-get failed (exit code 100)")
	assert.Contains(t, err.Error(), "...")
	assert.Less(t, len(err.Error()), 260)
}

func TestTranslateExitErrorWithoutOutput(t *testing.T) {
	exitErr := exec.Command("sh", "-c", "exit 2").Run()
	require.Error(t, exitErr)

	err := translateExitError("journalctl", exitErr, nil)
	assert.EqualError(t, err, "journalctl failed (exit code 2)")
}
