// db/backup.go
package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"radiotrack/metrics"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrBadBackupName  = errors.New("invalid backup file name")
	ErrBackupNotFound = errors.New("backup not found")
)

type BackupInfo struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"sizeBytes"`
	CreatedAt time.Time `json:"createdAt"`
}

// BackupService snapshots the SQLite database into a backup directory on a
// fixed interval and keeps only the newest N snapshots. Restore overwrites
// the live database file, so it is guarded by the same mutex as Create.
type BackupService struct {
	db       *gorm.DB
	dbPath   string
	dir      string
	keep     int
	interval time.Duration
	log      zerolog.Logger

	mu sync.Mutex
}

func NewBackupService(db *gorm.DB, dbPath, dir string, keep int, interval time.Duration, log zerolog.Logger) *BackupService {
	if keep <= 0 {
		keep = 10
	}
	return &BackupService{
		db:       db,
		dbPath:   dbPath,
		dir:      dir,
		keep:     keep,
		interval: interval,
		log:      log,
	}
}

// Start runs the periodic backup loop until ctx is cancelled. An interval of
// zero disables scheduling; manual backups through Create still work.
func (s *BackupService) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Info().Msg("scheduled backups disabled")
		return
	}
	s.log.Info().Dur("interval", s.interval).Str("dir", s.dir).Msg("backup service started")

	if _, err := s.Create(ctx); err != nil {
		s.log.Error().Err(err).Msg("initial backup failed")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Create(ctx); err != nil {
				s.log.Error().Err(err).Msg("scheduled backup failed")
			}
		}
	}
}

// Create writes one snapshot via VACUUM INTO, falling back to a plain file
// copy when the statement is unavailable, then prunes old snapshots.
func (s *BackupService) Create(ctx context.Context) (*BackupInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		metrics.IncBackup("error")
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("%s_backup_%s.db", s.stem(), time.Now().Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	if err := s.db.WithContext(ctx).Exec(fmt.Sprintf("VACUUM INTO '%s'", path)).Error; err != nil {
		s.log.Warn().Err(err).Msg("VACUUM INTO failed, falling back to file copy")
		if err := copyFile(s.dbPath, path); err != nil {
			metrics.IncBackup("error")
			return nil, fmt.Errorf("backup fallback copy: %w", err)
		}
	}

	fi, err := os.Stat(path)
	if err != nil {
		metrics.IncBackup("error")
		return nil, err
	}

	s.prune()
	metrics.IncBackup("ok")
	s.log.Info().Str("file", name).Int64("bytes", fi.Size()).Msg("database backup created")
	return &BackupInfo{Name: name, SizeBytes: fi.Size(), CreatedAt: fi.ModTime()}, nil
}

// List returns the available snapshots, newest first.
func (s *BackupService) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []BackupInfo
	for _, e := range entries {
		if e.IsDir() || !s.isBackupName(e.Name()) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		created := fi.ModTime()
		if ts, ok := s.parseStamp(e.Name()); ok {
			created = ts
		}
		out = append(out, BackupInfo{Name: e.Name(), SizeBytes: fi.Size(), CreatedAt: created})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Name > out[j].Name
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// LastBackupAt reports when the newest snapshot was taken.
func (s *BackupService) LastBackupAt() (time.Time, bool) {
	backups, err := s.List()
	if err != nil || len(backups) == 0 {
		return time.Time{}, false
	}
	return backups[0].CreatedAt, true
}

// Restore copies a named snapshot over the live database file. The WAL is
// checkpointed first so the main file holds every committed page, and stale
// sidecar files are removed after the copy.
func (s *BackupService) Restore(ctx context.Context, name string) error {
	if !s.isBackupName(name) {
		return ErrBadBackupName
	}
	src := filepath.Join(s.dir, name)
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return ErrBackupNotFound
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.WithContext(ctx).Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
		s.log.Warn().Err(err).Msg("wal checkpoint before restore failed")
	}
	if err := copyFile(src, s.dbPath); err != nil {
		return fmt.Errorf("restore copy: %w", err)
	}
	os.Remove(s.dbPath + "-wal")
	os.Remove(s.dbPath + "-shm")

	s.log.Info().Str("file", name).Msg("database restored from backup")
	return nil
}

func (s *BackupService) prune() {
	backups, err := s.List()
	if err != nil {
		s.log.Error().Err(err).Msg("list backups for pruning failed")
		return
	}
	for _, b := range backups[min(s.keep, len(backups)):] {
		if err := os.Remove(filepath.Join(s.dir, b.Name)); err != nil {
			s.log.Error().Err(err).Str("file", b.Name).Msg("remove old backup failed")
			continue
		}
		s.log.Info().Str("file", b.Name).Msg("removed old backup")
	}
}

func (s *BackupService) stem() string {
	base := filepath.Base(s.dbPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// isBackupName accepts only bare file names this service itself produced.
func (s *BackupService) isBackupName(name string) bool {
	if name != filepath.Base(name) || strings.ContainsAny(name, "/\\") {
		return false
	}
	if !strings.HasPrefix(name, s.stem()+"_backup_") || !strings.HasSuffix(name, ".db") {
		return false
	}
	_, ok := s.parseStamp(name)
	return ok
}

func (s *BackupService) parseStamp(name string) (time.Time, bool) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, s.stem()+"_backup_"), ".db")
	ts, err := time.ParseInLocation("20060102_150405", stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
