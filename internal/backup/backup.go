// Package backup copies the SQLite database file into the backup folder
// and restores from it. Backups are plain file copies; the database uses a
// rollback journal, so a copy taken between transactions is consistent.
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quisqueyalabs/contalibro/internal/clock"
	"github.com/quisqueyalabs/contalibro/internal/config"
)

const (
	filePrefix  = "contalibro-"
	fileExt     = ".db"
	stampLayout = "20060102-150405"
)

var (
	ErrNotSQLite      = errors.New("backups require the sqlite backend")
	ErrBackupNotFound = errors.New("backup not found")
)

// Info describes one backup file.
type Info struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	log   *zap.Logger
	cfg   config.Config
	clock clock.Clock
}

func New(log *zap.Logger, cfg config.Config, clk clock.Clock) *Service {
	return &Service{
		log:   log.Named("backup"),
		cfg:   cfg,
		clock: clk,
	}
}

// Backup copies the database file into the backup folder and returns the
// backup name.
func (s *Service) Backup() (string, error) {
	if err := s.requireSQLite(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.cfg.BackupDir, 0o755); err != nil {
		return "", err
	}

	name := filePrefix + s.clock.Now().Format(stampLayout) + fileExt
	dst := filepath.Join(s.cfg.BackupDir, name)
	if err := copyFile(s.cfg.DBPath, dst); err != nil {
		return "", fmt.Errorf("copy database: %w", err)
	}

	s.log.Info("backup created", zap.String("name", name))
	return name, nil
}

// Restore replaces the database file with the named backup. The caller is
// responsible for having closed every database handle first; the CLI runs
// with the server stopped.
func (s *Service) Restore(name string) error {
	if err := s.requireSQLite(); err != nil {
		return err
	}

	src := filepath.Join(s.cfg.BackupDir, filepath.Base(name))
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return ErrBackupNotFound
		}
		return err
	}

	if err := copyFile(src, s.cfg.DBPath); err != nil {
		return fmt.Errorf("restore database: %w", err)
	}

	s.log.Info("backup restored", zap.String("name", filepath.Base(name)))
	return nil
}

// List returns the available backups, newest first.
func (s *Service) List() ([]Info, error) {
	entries, err := os.ReadDir(s.cfg.BackupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	backups := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isBackupName(entry.Name()) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Name:      entry.Name(),
			Size:      fi.Size(),
			CreatedAt: fi.ModTime().UTC(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}

// Prune deletes all but the newest keep backups. Deletion failures are
// logged and swallowed; pruning is housekeeping, never a reason to fail
// the backup that triggered it.
func (s *Service) Prune(keep int) {
	if keep < 1 {
		keep = 1
	}

	backups, err := s.List()
	if err != nil {
		s.log.Warn("prune listing failed", zap.Error(err))
		return
	}

	for _, old := range backups[min(keep, len(backups)):] {
		path := filepath.Join(s.cfg.BackupDir, old.Name)
		if err := os.Remove(path); err != nil {
			s.log.Warn("prune failed", zap.String("name", old.Name), zap.Error(err))
			continue
		}
		s.log.Info("backup pruned", zap.String("name", old.Name))
	}
}

func (s *Service) requireSQLite() error {
	if s.cfg.IsFirestore() {
		return ErrNotSQLite
	}
	if s.cfg.DBType != "" && s.cfg.DBType != "sqlite" {
		return ErrNotSQLite
	}
	return nil
}

func isBackupName(name string) bool {
	return strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileExt)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*")
	if err != nil {
		return err
	}
	tmp := out.Name()

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}
