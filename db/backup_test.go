package db

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"radiotrack/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBackupService(t *testing.T, keep int) (*BackupService, *Repo, string) {
	t.Helper()
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "inventory.db")
	backupDir := filepath.Join(tempDir, "backups")

	gdb, err := Connect(dbPath)
	require.NoError(t, err)

	s := NewBackupService(gdb, dbPath, backupDir, keep, 0, zerolog.Nop())
	return s, NewRepo(gdb), dbPath
}

func TestBackupCreate(t *testing.T) {
	s, repo, _ := setupBackupService(t, 10)
	ctx := context.Background()

	require.NoError(t, repo.CreateItem(ctx, &models.Item{
		Name: "Motorola XTS 5000", Category: "Portable Radios",
		Location: "Control Center", Condition: models.ConditionGood,
	}))

	info, err := s.Create(ctx)
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.True(t, strings.HasPrefix(info.Name, "inventory_backup_"), "got %q", info.Name)
	assert.True(t, strings.HasSuffix(info.Name, ".db"))
	assert.Greater(t, info.SizeBytes, int64(0))

	files, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestBackupList(t *testing.T) {
	s, _, _ := setupBackupService(t, 10)

	t.Run("MissingDirectory", func(t *testing.T) {
		backups, err := s.List()
		require.NoError(t, err)
		assert.Empty(t, backups)
	})

	t.Run("NewestFirst", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(s.dir, 0o755))
		for _, name := range []string{
			"inventory_backup_20240101_060000.db",
			"inventory_backup_20240103_060000.db",
			"inventory_backup_20240102_060000.db",
			"notes.txt",
			"other_backup_20240104_060000.db",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(s.dir, name), []byte("x"), 0o644))
		}

		backups, err := s.List()
		require.NoError(t, err)
		require.Len(t, backups, 3)
		assert.Equal(t, "inventory_backup_20240103_060000.db", backups[0].Name)
		assert.Equal(t, "inventory_backup_20240102_060000.db", backups[1].Name)
		assert.Equal(t, "inventory_backup_20240101_060000.db", backups[2].Name)

		// Creation time comes from the name stamp, not the file mtime.
		want := time.Date(2024, 1, 3, 6, 0, 0, 0, time.Local)
		assert.True(t, backups[0].CreatedAt.Equal(want))
	})
}

func TestBackupRetention(t *testing.T) {
	s, _, _ := setupBackupService(t, 2)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(s.dir, 0o755))
	for _, name := range []string{
		"inventory_backup_20240101_060000.db",
		"inventory_backup_20240102_060000.db",
		"inventory_backup_20240103_060000.db",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(s.dir, name), []byte("x"), 0o644))
	}

	_, err := s.Create(ctx)
	require.NoError(t, err)

	backups, err := s.List()
	require.NoError(t, err)
	require.Len(t, backups, 2)
	// The fresh snapshot plus the newest of the old ones survive.
	assert.True(t, strings.HasPrefix(backups[0].Name, "inventory_backup_"))
	assert.Equal(t, "inventory_backup_20240103_060000.db", backups[1].Name)
}

func TestBackupRestore(t *testing.T) {
	s, repo, dbPath := setupBackupService(t, 10)
	ctx := context.Background()

	require.NoError(t, repo.CreateItem(ctx, &models.Item{
		Name: "Kept Radio", Category: "Portable Radios",
		Location: "Control Center", Condition: models.ConditionGood,
	}))

	info, err := s.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.CreateItem(ctx, &models.Item{
		Name: "Added After Backup", Category: "Portable Radios",
		Location: "Tower 1", Condition: models.ConditionGood,
	}))

	require.NoError(t, s.Restore(ctx, info.Name))

	// A fresh connection sees the snapshot state.
	gdb, err := Connect(dbPath)
	require.NoError(t, err)
	restored := NewRepo(gdb)

	n, err := restored.CountItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	items, err := restored.AllItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Kept Radio", items[0].Name)
}

func TestBackupRestoreRejectsBadNames(t *testing.T) {
	s, _, _ := setupBackupService(t, 10)
	ctx := context.Background()

	cases := []string{
		"",
		"notes.txt",
		"inventory_backup_garbage.db",
		"other_backup_20240101_060000.db",
		"../inventory_backup_20240101_060000.db",
		"sub/inventory_backup_20240101_060000.db",
	}
	for _, name := range cases {
		err := s.Restore(ctx, name)
		assert.ErrorIs(t, err, ErrBadBackupName, "name %q", name)
	}

	err := s.Restore(ctx, "inventory_backup_20240101_060000.db")
	assert.ErrorIs(t, err, ErrBackupNotFound)
}

func TestBackupLastBackupAt(t *testing.T) {
	s, _, _ := setupBackupService(t, 10)

	_, ok := s.LastBackupAt()
	assert.False(t, ok)

	_, err := s.Create(context.Background())
	require.NoError(t, err)

	at, ok := s.LastBackupAt()
	assert.True(t, ok)
	assert.False(t, at.IsZero())
}

func TestBackupStartDisabled(t *testing.T) {
	s, _, _ := setupBackupService(t, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Interval zero disables the loop; Start must return at once.
	s.Start(ctx)
}
