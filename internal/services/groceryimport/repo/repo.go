// Package repo persists the dedup ledger and the purchase store as JSON files in the data directory
package repo

import (
	"context"
	"path/filepath"

	"grocer/internal/services/groceryimport/domain"
)

// File names inside the data directory
const (
	ItemsFile  = "items.json"
	LedgerFile = "import_log.json"
)

// Files opens the ledger and store under one data directory; it satisfies domain.StorageRepo
type Files struct {
	Dir string
}

// NewFiles constructs the file-backed storage repo
func NewFiles(dir string) *Files { return &Files{Dir: dir} }

// ItemsPath returns the items.json path
func (f *Files) ItemsPath() string { return filepath.Join(f.Dir, ItemsFile) }

// LedgerPath returns the import_log.json path
func (f *Files) LedgerPath() string { return filepath.Join(f.Dir, LedgerFile) }

// OpenLedger implements domain.StorageRepo
func (f *Files) OpenLedger(ctx context.Context) (domain.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return OpenLedger(f.LedgerPath())
}

// OpenStore implements domain.StorageRepo
func (f *Files) OpenStore(ctx context.Context) (domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return OpenStore(f.ItemsPath())
}

// LoadItems reads a snapshot of all items for read-only callers
func (f *Files) LoadItems(ctx context.Context) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := OpenStore(f.ItemsPath())
	if err != nil {
		return nil, err
	}
	return s.Items(), nil
}

// Ping reports whether the items file is readable
func (f *Files) Ping(ctx context.Context) error {
	_, err := f.LoadItems(ctx)
	return err
}
