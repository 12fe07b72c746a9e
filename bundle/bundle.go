// Package bundle manages the on-disk output of a collection run: the bundle
// directory tree, per-command log artifacts, collected file artifacts, the
// manifest document, and the final tar.gz archive.
package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrExists is returned when the bundle directory for this run already
// exists. Bundles are created fresh per run and never reused.
var ErrExists = errors.New("bundle directory already exists")

// Layout is the directory tree of one bundle. The directories are created
// before any command runs and are exclusively owned by the run.
type Layout struct {
	// Name is the bundle's base name, incident_<target>_<timestamp>
	Name string
	// Dir is the bundle root directory
	Dir string
	// CommandsDir holds one .log artifact per executed command
	CommandsDir string
	// FilesDir holds one .txt artifact per collected file
	FilesDir string
}

// NewLayout creates the bundle directory tree under outDir for the given
// sanitized target slug. The bundle name embeds the creation timestamp at
// second precision; a collision with an existing bundle returns ErrExists.
func NewLayout(outDir, targetSlug string, now time.Time) (*Layout, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("incident_%s_%s", targetSlug, now.Format("20060102_150405"))
	l := &Layout{
		Name: name,
		Dir:  filepath.Join(outDir, name),
	}
	l.CommandsDir = filepath.Join(l.Dir, "commands")
	l.FilesDir = filepath.Join(l.Dir, "files")

	if err := os.Mkdir(l.Dir, 0o755); err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrExists, l.Dir)
		}
		return nil, fmt.Errorf("failed to create bundle directory: %w", err)
	}
	for _, dir := range []string{l.CommandsDir, l.FilesDir} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bundle directory: %w", err)
		}
	}

	return l, nil
}

// ArchivePath returns the path of the bundle's tar.gz archive, a sibling of
// the bundle directory.
func (l *Layout) ArchivePath() string {
	return l.Dir + ".tar.gz"
}
