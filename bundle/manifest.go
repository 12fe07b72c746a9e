package bundle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/incidentctl/incidentctl/model"
)

// ManifestName is the manifest document's file name at the bundle root.
const ManifestName = "manifest.json"

// WriteManifest serializes the manifest to the bundle root. It is called once
// before packaging, and a second time with corrected status if packaging
// fails.
func WriteManifest(l *Layout, m *model.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(l.Dir, ManifestName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
