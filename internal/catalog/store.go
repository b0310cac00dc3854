package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ppiankov/lapidary/internal/model"
)

// Store supplies the ordered reference catalog. Implementations are
// read-only: the engine never mutates the records a Store returns.
type Store interface {
	// Load returns the full catalog in source order.
	Load(ctx context.Context) ([]model.Mineral, error)

	// Source identifies the backing data source (for reports and cache keys).
	Source() string
}

// Open picks a store implementation from the path extension:
// .db/.sqlite/.sqlite3 use the embedded SQLite database, .yaml/.yml/.json
// use the file loader.
func Open(path string) (Store, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog path is required")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStore(path), nil
	case ".yaml", ".yml", ".json":
		return NewFileStore(path), nil
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s (supported: .db, .sqlite, .sqlite3, .yaml, .yml, .json)", path)
	}
}
