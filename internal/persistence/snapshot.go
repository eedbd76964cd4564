package persistence

import (
	"context"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/logger"
	"github.com/insuranceguard/insuranceguard/internal/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SnapshotFile persists the whole dataset as one JSON file. Save writes to
// a temp file and renames it over the target, so a crash mid-write never
// leaves a truncated snapshot behind.
type SnapshotFile struct {
	path   string
	logger *logger.Logger
}

// NewSnapshotFile returns a gateway over the given file path.
func NewSnapshotFile(path string, log *logger.Logger) *SnapshotFile {
	return &SnapshotFile{path: path, logger: log}
}

// Path returns the snapshot file location.
func (f *SnapshotFile) Path() string {
	return f.path
}

func (f *SnapshotFile) Load(ctx context.Context) (*store.Dataset, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Infow("no dataset snapshot found, starting empty", "path", f.path)
			return store.NewDataset(), nil
		}
		return nil, ierr.WithError(err).
			WithHintf("Could not read dataset snapshot at %s", f.path).
			Mark(ierr.ErrIO)
	}

	d := store.NewDataset()
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Dataset snapshot at %s is not valid JSON", f.path).
			Mark(ierr.ErrIO)
	}
	d.Normalize()
	return d, nil
}

func (f *SnapshotFile) Save(ctx context.Context, d *store.Dataset) error {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not encode dataset snapshot").
			Mark(ierr.ErrIO)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return ierr.WithError(err).
			WithHintf("Could not create data directory for %s", f.path).
			Mark(ierr.ErrIO)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return ierr.WithError(err).
			WithHintf("Could not write dataset snapshot to %s", tmp).
			Mark(ierr.ErrIO)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return ierr.WithError(err).
			WithHintf("Could not replace dataset snapshot at %s", f.path).
			Mark(ierr.ErrIO)
	}
	return nil
}
