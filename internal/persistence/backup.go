package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/logger"
)

// Backupper periodically copies the dataset snapshot into a backup
// directory with a timestamped name. Best-effort: a failed backup is logged
// and retried on the next tick.
type Backupper struct {
	src      string
	dir      string
	interval time.Duration
	logger   *logger.Logger
}

func NewBackupper(src, dir string, interval time.Duration, log *logger.Logger) *Backupper {
	return &Backupper{src: src, dir: dir, interval: interval, logger: log}
}

// Run blocks until ctx is done, copying the snapshot every interval.
func (b *Backupper) Run(ctx context.Context) {
	if b.dir == "" || b.interval <= 0 {
		b.logger.Infow("snapshot backups disabled")
		return
	}

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := b.BackupOnce(); err != nil {
				b.logger.Errorw("snapshot backup failed", "error", err)
			}
		}
	}
}

// BackupOnce copies the current snapshot file into the backup directory.
func (b *Backupper) BackupOnce() error {
	raw, err := os.ReadFile(b.src)
	if err != nil {
		if os.IsNotExist(err) {
			// nothing to back up yet
			return nil
		}
		return ierr.WithError(err).
			WithHintf("Could not read snapshot at %s", b.src).
			Mark(ierr.ErrIO)
	}

	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return ierr.WithError(err).
			WithHintf("Could not create backup directory %s", b.dir).
			Mark(ierr.ErrIO)
	}

	name := fmt.Sprintf("backup_%s.json", time.Now().UTC().Format("20060102_150405"))
	dst := filepath.Join(b.dir, name)
	if err := os.WriteFile(dst, raw, 0o644); err != nil {
		return ierr.WithError(err).
			WithHintf("Could not write backup to %s", dst).
			Mark(ierr.ErrIO)
	}

	b.logger.Infow("snapshot backup written", "path", dst)
	return nil
}
