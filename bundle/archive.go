package bundle

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Archive wraps the bundle directory into a single tar.gz archive next to it.
// Entries are stored under the bundle's own top-level name, so extracting the
// archive reproduces the exact directory layout. The bundle directory is
// retained alongside the archive.
func (l *Layout) Archive() error {
	out, err := os.Create(l.ArchivePath())
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	err = filepath.WalkDir(l.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(l.Dir, path)
		if err != nil {
			return err
		}
		name := l.Name
		if rel != "." {
			name = filepath.Join(l.Name, rel)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(name)
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	return nil
}
