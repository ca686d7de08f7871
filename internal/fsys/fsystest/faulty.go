// Package fsystest provides fault injection over the real filesystem for tests.
package fsystest

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ppiankov/sortforge/internal/fsys"
)

// Faulty delegates to fsys.OS but fails the configured paths.
// Keys are base names, so tests need not know the temp directory.
type Faulty struct {
	fsys.OS
	ReadDirErr error
	MkdirErr   map[string]error
	MoveErr    map[string]error

	Moves int
}

func (f *Faulty) ReadDir(dir string) ([]string, error) {
	if f.ReadDirErr != nil {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: f.ReadDirErr}
	}
	return f.OS.ReadDir(dir)
}

func (f *Faulty) Mkdir(path string) error {
	if err, ok := f.MkdirErr[filepath.Base(path)]; ok {
		return &fs.PathError{Op: "mkdir", Path: path, Err: err}
	}
	return f.OS.Mkdir(path)
}

func (f *Faulty) Move(src, dstDir string) (string, error) {
	if err, ok := f.MoveErr[filepath.Base(src)]; ok {
		return "", &os.LinkError{Op: "rename", Old: src, New: filepath.Join(dstDir, filepath.Base(src)), Err: err}
	}
	f.Moves++
	return f.OS.Move(src, dstDir)
}

// FailingArchiver always returns Err.
type FailingArchiver struct {
	Err error
}

func (a FailingArchiver) Archive(root, target string, exclude ...string) error {
	return a.Err
}
