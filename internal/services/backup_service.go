package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/antigone-study/backend/internal/kvstore"
	"github.com/antigone-study/backend/internal/models"
	"go.uber.org/zap"
)

const (
	backupFilePrefix = "antigone-backup-"
	backupFileSuffix = ".json"
	backupTimeLayout = "20060102T150405.000Z"
)

// RosterCache is the interface that wraps dropping a roster kept in memory
type RosterCache interface {
	// Method Invalidate drops the roster kept in memory so that the next use reloads it from the store.
	Invalidate()
}

type backupService struct {
	store   kvstore.Store
	driver  string
	logger  *zap.Logger
	now     func() time.Time
	rosters []RosterCache
}

// NewBackupService creates a backup service over the unscoped store.
// "driver" is recorded in exported documents for reference only.
func NewBackupService(store kvstore.Store, driver string, logger *zap.Logger) *backupService {
	return &backupService{
		store:  store,
		driver: driver,
		logger: logger,
		now:    time.Now,
	}
}

// Export snapshots every entry of the store
func (s *backupService) Export(ctx context.Context) (*models.Backup, error) {
	entries, err := s.store.List(ctx, "")
	if err != nil {
		s.logger.Error("failed to list entries for backup", zap.Error(err))
		return nil, fmt.Errorf("failed to export store: %w", err)
	}

	backup := &models.Backup{
		Version:    models.BackupVersion,
		ExportedAt: s.now().UTC(),
		Driver:     s.driver,
		Entries:    make(map[string]string, len(entries)),
	}
	for _, entry := range entries {
		backup.Entries[entry.Key] = entry.Value
	}
	return backup, nil
}

// InvalidateOnImport registers "cache" to be dropped after every import that writes or removes the roster
func (s *backupService) InvalidateOnImport(cache RosterCache) {
	s.rosters = append(s.rosters, cache)
}

// Import writes every entry of "backup" into the store.
// With "clear" set, entries absent from the backup are removed first.
// Registered roster caches are dropped once the roster entry has changed, even when the import fails midway.
func (s *backupService) Import(ctx context.Context, backup *models.Backup, clear bool) (*models.ImportResult, error) {
	if backup.Version != models.BackupVersion {
		return nil, fmt.Errorf("unsupported backup version %d", backup.Version)
	}

	result := &models.ImportResult{}
	rosterChanged := false
	defer func() {
		if rosterChanged {
			s.invalidateRosters()
		}
	}()

	if clear {
		existing, err := s.store.List(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("failed to list entries: %w", err)
		}
		for _, entry := range existing {
			if _, keep := backup.Entries[entry.Key]; keep {
				continue
			}
			if err := s.store.Remove(ctx, entry.Key); err != nil {
				return result, fmt.Errorf("failed to remove %s: %w", entry.Key, err)
			}
			rosterChanged = rosterChanged || entry.Key == kvstore.KeyStudents
			result.Removed++
		}
	}

	keys := make([]string, 0, len(backup.Entries))
	for key := range backup.Entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := s.store.Set(ctx, key, backup.Entries[key]); err != nil {
			return result, fmt.Errorf("failed to restore %s: %w", key, err)
		}
		rosterChanged = rosterChanged || key == kvstore.KeyStudents
		result.Imported++
	}

	s.logger.Info("backup imported", zap.Int("imported", result.Imported), zap.Int("removed", result.Removed))
	return result, nil
}

func (s *backupService) invalidateRosters() {
	for _, cache := range s.rosters {
		cache.Invalidate()
	}
	s.logger.Info("roster cache invalidated after import")
}

// WriteTo exports the store as JSON into "w"
func (s *backupService) WriteTo(ctx context.Context, w io.Writer) error {
	backup, err := s.Export(ctx)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// ReadBackup decodes a backup document
func ReadBackup(r io.Reader) (*models.Backup, error) {
	var backup models.Backup
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Entries == nil {
		backup.Entries = map[string]string{}
	}
	return &backup, nil
}

// WriteFile exports the store into a new timestamped file in "dir" and returns its path.
// An existing file of the same name is never overwritten.
func (s *backupService) WriteFile(ctx context.Context, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := backupFilePrefix + s.now().UTC().Format(backupTimeLayout) + backupFileSuffix
	path := filepath.Join(dir, name)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}

	if err := s.WriteTo(ctx, file); err != nil {
		file.Close()
		os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close backup file: %w", err)
	}
	return path, nil
}

// Prune keeps the "retain" newest backup files of "dir" and deletes the others.
// A non-positive "retain" keeps every file.
func (s *backupService) Prune(dir string, retain int) (int, error) {
	if retain <= 0 {
		return 0, nil
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var names []string
	for _, f := range files {
		if !f.IsDir() && strings.HasPrefix(f.Name(), backupFilePrefix) && strings.HasSuffix(f.Name(), backupFileSuffix) {
			names = append(names, f.Name())
		}
	}
	// timestamps sort lexicographically
	sort.Strings(names)

	removed := 0
	for len(names)-removed > retain {
		if err := os.Remove(filepath.Join(dir, names[removed])); err != nil {
			return removed, fmt.Errorf("failed to remove old backup: %w", err)
		}
		removed++
	}
	return removed, nil
}
