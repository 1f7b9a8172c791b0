// Package scheduler runs the periodic store backups
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// backupTimeout bounds one backup run
const backupTimeout = 5 * time.Minute

// BackupWriter is the interface that wraps the backup file operations
type BackupWriter interface {
	// Method WriteFile exports the store into a new file of "dir" and returns its path.
	WriteFile(ctx context.Context, dir string) (string, error)
	// Method Prune removes all but the "retain" newest backup files of "dir".
	Prune(dir string, retain int) (int, error)
}

// Options configures the backup job
type Options struct {
	Dir      string
	Interval time.Duration
	Retain   int
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	backups   BackupWriter
	opts      Options
	logger    *zap.Logger
}

// New creates a new scheduler instance
func New(backups BackupWriter, opts Options, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		backups:   backups,
		opts:      opts,
		logger:    logger,
	}
}

// Start schedules the backup job and runs the scheduler in the background.
// The first backup runs one interval after Start.
func (s *Scheduler) Start() error {
	if s.opts.Interval <= 0 {
		return fmt.Errorf("invalid backup interval %s", s.opts.Interval)
	}

	_, err := s.scheduler.Every(s.opts.Interval).
		WaitForSchedule().
		SingletonMode().
		Do(s.runScheduledBackup)
	if err != nil {
		return fmt.Errorf("failed to schedule backup job: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("backup scheduler started",
		zap.String("dir", s.opts.Dir),
		zap.Duration("interval", s.opts.Interval),
		zap.Int("retain", s.opts.Retain),
	)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunBackup writes one backup file and prunes the old ones
func (s *Scheduler) RunBackup(ctx context.Context) error {
	path, err := s.backups.WriteFile(ctx, s.opts.Dir)
	if err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	removed, err := s.backups.Prune(s.opts.Dir, s.opts.Retain)
	if err != nil {
		return fmt.Errorf("failed to prune backups: %w", err)
	}

	s.logger.Info("backup written", zap.String("path", path), zap.Int("pruned", removed))
	return nil
}

func (s *Scheduler) runScheduledBackup() {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	if err := s.RunBackup(ctx); err != nil {
		s.logger.Error("scheduled backup failed", zap.Error(err))
	}
}
