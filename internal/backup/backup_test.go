package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quisqueyalabs/contalibro/internal/clock"
	"github.com/quisqueyalabs/contalibro/internal/config"
)

func newService(t *testing.T, fake *clock.FakeClock) (*Service, config.Config) {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "contalibro.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("estado-actual"), 0o644))

	cfg := config.Config{
		Backend:   config.BackendSQL,
		DBType:    "sqlite",
		DBPath:    dbPath,
		BackupDir: filepath.Join(dir, "respaldos"),
	}
	return New(zap.NewNop(), cfg, fake), cfg
}

func TestBackupAndList(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC))
	svc, cfg := newService(t, fake)

	name, err := svc.Backup()
	require.NoError(t, err)
	assert.Equal(t, "contalibro-20240305-103000.db", name)

	data, err := os.ReadFile(filepath.Join(cfg.BackupDir, name))
	require.NoError(t, err)
	assert.Equal(t, "estado-actual", string(data))

	backups, err := svc.List()
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, name, backups[0].Name)
}

func TestListEmptyDirIsNotAnError(t *testing.T) {
	fake := clock.NewFakeClock(time.Now())
	svc, _ := newService(t, fake)

	backups, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestRestoreReplacesDatabase(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC))
	svc, cfg := newService(t, fake)

	name, err := svc.Backup()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cfg.DBPath, []byte("estado-dañado"), 0o644))
	require.NoError(t, svc.Restore(name))

	data, err := os.ReadFile(cfg.DBPath)
	require.NoError(t, err)
	assert.Equal(t, "estado-actual", string(data))
}

func TestRestoreUnknownBackup(t *testing.T) {
	fake := clock.NewFakeClock(time.Now())
	svc, _ := newService(t, fake)

	err := svc.Restore("contalibro-19990101-000000.db")
	assert.ErrorIs(t, err, ErrBackupNotFound)
}

func TestPruneKeepsNewest(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC))
	svc, _ := newService(t, fake)

	var names []string
	for i := 0; i < 4; i++ {
		name, err := svc.Backup()
		require.NoError(t, err)
		names = append(names, name)
		fake.Advance(time.Hour)
	}

	svc.Prune(2)

	backups, err := svc.List()
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, names[3], backups[0].Name)
	assert.Equal(t, names[2], backups[1].Name)
}

func TestBackupRejectsFirestoreBackend(t *testing.T) {
	svc := New(zap.NewNop(), config.Config{Backend: config.BackendFirestore}, clock.NewFakeClock(time.Now()))

	_, err := svc.Backup()
	assert.ErrorIs(t, err, ErrNotSQLite)
}
