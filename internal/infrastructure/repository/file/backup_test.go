package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupCopiesTrackedFiles(t *testing.T) {
	dir := t.TempDir()
	products := filepath.Join(dir, "products.json")
	log := filepath.Join(dir, "purchase.log")
	require.NoError(t, os.WriteFile(products, []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(log, []byte("User 42 - Order:\n"), 0o644))

	backupDir := filepath.Join(dir, "backups")
	missing := filepath.Join(dir, "cart_data.json")
	b := NewBackup(backupDir, []string{products, log, missing}, 0, testTracer(), testLogger())

	require.NoError(t, b.Run(context.Background()))

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())

	snapshot := filepath.Join(backupDir, entries[0].Name())
	data, err := os.ReadFile(filepath.Join(snapshot, "products.json"))
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)

	data, err = os.ReadFile(filepath.Join(snapshot, "purchase.log"))
	require.NoError(t, err)
	assert.Equal(t, "User 42 - Order:\n", string(data))

	// The missing tracked file is skipped, not backed up as empty.
	_, err = os.Stat(filepath.Join(snapshot, "cart_data.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestBackupPruneKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")

	old := []string{"2026-01-01_00-00-00", "2026-01-02_00-00-00", "2026-01-03_00-00-00"}
	for _, name := range old {
		require.NoError(t, os.MkdirAll(filepath.Join(backupDir, name), 0o755))
	}

	b := NewBackup(backupDir, nil, 2, testTracer(), testLogger())
	require.NoError(t, b.Run(context.Background()))

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Oldest directories are gone; the run just taken survives.
	_, err = os.Stat(filepath.Join(backupDir, old[0]))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(backupDir, old[1]))
	assert.True(t, os.IsNotExist(err))
}

func TestBackupUnboundedWhenKeepZero(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	for _, name := range []string{"2026-01-01_00-00-00", "2026-01-02_00-00-00"} {
		require.NoError(t, os.MkdirAll(filepath.Join(backupDir, name), 0o755))
	}

	b := NewBackup(backupDir, nil, 0, testTracer(), testLogger())
	require.NoError(t, b.Run(context.Background()))

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
