package fsys

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Zip writes deflate-compressed zip archives.
type Zip struct{}

// Archive writes every entry under root into target. A symlinked root is
// followed; links inside the tree are not.
func (Zip) Archive(root, target string, exclude ...string) (err error) {
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", root, err)
	}

	skip := make(map[string]bool, 2*(len(exclude)+1))
	for _, p := range append([]string{target}, exclude...) {
		skip[filepath.Clean(p)] = true
		skip[resolveParent(p)] = true
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(target)
		}
	}()

	zw := zip.NewWriter(f)
	walkErr := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == walkRoot {
			return nil
		}
		if skip[filepath.Clean(path)] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		if d.IsDir() {
			_, err := zw.Create(name + "/")
			return err
		}
		if !d.Type().IsRegular() {
			slog.Debug("archive: skipping irregular file", "path", path, "mode", d.Type())
			return nil
		}
		return addFile(zw, path, name, d)
	})

	closeErr := zw.Close()
	fileErr := f.Close()
	switch {
	case walkErr != nil:
		return fmt.Errorf("walk %s: %w", root, walkErr)
	case closeErr != nil:
		return fmt.Errorf("finalize archive: %w", closeErr)
	case fileErr != nil:
		return fmt.Errorf("close archive: %w", fileErr)
	}
	return nil
}

func addFile(zw *zip.Writer, path, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()
	_, err = io.Copy(w, src)
	return err
}

// resolveParent resolves the symlinks in p's directory. p itself may not
// exist yet.
func resolveParent(p string) string {
	dir, err := filepath.EvalSymlinks(filepath.Dir(p))
	if err != nil {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, filepath.Base(p))
}
