// Package fsys provides the filesystem primitives the organizer calls through.
package fsys

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"syscall"
)

// FS is the narrow filesystem surface used by scan, organize and backup.
type FS interface {
	// ReadDir returns the full paths of dir's immediate children, sorted by name.
	ReadDir(dir string) ([]string, error)
	Stat(path string) (fs.FileInfo, error)
	Lstat(path string) (fs.FileInfo, error)
	// Mkdir creates a single directory; the parent must exist.
	Mkdir(path string) error
	// Move relocates src into dstDir keeping its base name and returns the
	// new path. It fails if the destination name is already taken.
	Move(src, dstDir string) (string, error)
}

// Archiver snapshots a directory tree into a single compressed file.
type Archiver interface {
	// Archive writes the tree rooted at root to target. Paths listed in
	// exclude (and target itself) are left out of the snapshot.
	Archive(root, target string, exclude ...string) error
}

// Exists reports whether anything is present at path, without following
// a trailing symlink.
func Exists(fsys FS, path string) bool {
	_, err := fsys.Lstat(path)
	return err == nil
}

// OS implements FS on the local filesystem.
type OS struct{}

func (OS) ReadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func (OS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

func (OS) Lstat(path string) (fs.FileInfo, error) { return os.Lstat(path) }

func (OS) Mkdir(path string) error { return os.Mkdir(path, 0o755) }

func (OS) Move(src, dstDir string) (string, error) {
	dst := filepath.Join(dstDir, filepath.Base(src))
	if _, err := os.Lstat(dst); err == nil {
		return "", &os.LinkError{Op: "move", Old: src, New: dst, Err: fs.ErrExist}
	}
	err := os.Rename(src, dst)
	if err == nil {
		return dst, nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return "", err
	}
	// Cross-device: copy + remove.
	if err := copyFile(src, dst); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("copy across devices: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return "", fmt.Errorf("remove source after copy: %w", err)
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
