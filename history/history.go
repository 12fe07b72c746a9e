// Package history loads the manifests of previously collected bundles from
// an output directory.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/incidentctl/incidentctl/bundle"
	"github.com/incidentctl/incidentctl/model"
	"github.com/rs/zerolog"
)

type Entry struct {
	Manifest model.Manifest
	FullPath string
}

// LoadEntries loads the manifest of every bundle directory under outDir.
// Bundles with a missing or unparseable manifest are skipped with a warning;
// one damaged bundle must not hide the rest.
func LoadEntries(logger zerolog.Logger, outDir string) ([]Entry, error) {
	dirents, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var entries []Entry
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		dir := filepath.Join(outDir, d.Name())
		manifestPath := filepath.Join(dir, bundle.ManifestName)
		if _, err := os.Stat(manifestPath); err != nil {
			continue
		}

		manifest, err := parseManifest(manifestPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", manifestPath).Msg("Failed to parse manifest")
			continue
		}

		entries = append(entries, Entry{
			Manifest: manifest,
			FullPath: dir,
		})
	}

	return entries, nil
}

// parseManifest parses one manifest.json file.
func parseManifest(path string) (model.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Manifest{}, err
	}

	var manifest model.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return model.Manifest{}, err
	}

	return manifest, nil
}
