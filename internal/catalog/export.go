// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes the catalog (optionally filtered by set) to path as a
// YAML snapshot the researcher can inspect or check in alongside results.
func (s *Store) ExportYAML(ctx context.Context, setName, path string) error {
	recs, err := s.List(ctx, setName)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	data, err := yaml.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
