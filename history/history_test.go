package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/incidentctl/incidentctl/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeBundle(t *testing.T, outDir, name string, m model.Manifest) {
	t.Helper()
	dir := filepath.Join(outDir, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	data, err := json.Marshal(m)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), data, 0o644))
}

func TestLoadEntries(t *testing.T) {
	outDir := t.TempDir()

	writeBundle(t, outDir, "incident_local_20260831_100000", model.Manifest{
		Target:        "local",
		OverallStatus: model.StatusOK,
	})
	writeBundle(t, outDir, "incident_web-01_20260831_110000", model.Manifest{
		Target:        "web-01",
		OverallStatus: model.StatusPartial,
	})

	// Sibling archives and directories without a manifest are not bundles.
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "incident_local_20260831_100000.tar.gz"), []byte("gz"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(outDir, "not-a-bundle"), 0o755))

	entries, err := LoadEntries(zerolog.Nop(), outDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	targets := map[string]bool{}
	for _, e := range entries {
		targets[e.Manifest.Target] = true
	}
	require.True(t, targets["local"])
	require.True(t, targets["web-01"])
}

func TestLoadEntries_SkipsDamagedManifest(t *testing.T) {
	outDir := t.TempDir()

	writeBundle(t, outDir, "incident_local_20260831_100000", model.Manifest{Target: "local"})

	broken := filepath.Join(outDir, "incident_local_20260831_110000")
	require.NoError(t, os.MkdirAll(broken, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(broken, "manifest.json"), []byte("{nope"), 0o644))

	entries, err := LoadEntries(zerolog.Nop(), outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "local", entries[0].Manifest.Target)
}

func TestLoadEntries_MissingDir(t *testing.T) {
	_, err := LoadEntries(zerolog.Nop(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
