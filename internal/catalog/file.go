package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/lapidary/internal/model"
)

// FileStore loads a catalog from a YAML or JSON file containing a list of
// mineral records.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed catalog store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Source returns the file path.
func (s *FileStore) Source() string {
	return s.path
}

// Load reads and decodes the catalog file. The format is chosen by
// extension; records keep file order.
func (s *FileStore) Load(ctx context.Context) ([]model.Mineral, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var minerals []model.Mineral
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".json":
		if err := json.Unmarshal(data, &minerals); err != nil {
			return nil, fmt.Errorf("decode JSON catalog: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &minerals); err != nil {
			return nil, fmt.Errorf("decode YAML catalog: %w", err)
		}
	}

	for i, m := range minerals {
		if m.Name == "" {
			return nil, fmt.Errorf("catalog record %d has no name", i)
		}
	}

	return minerals, nil
}
