package scan

import (
	"log/slog"
	"path/filepath"

	"github.com/ppiankov/sortforge/internal/errlog"
	"github.com/ppiankov/sortforge/internal/fsys"
)

// Kind distinguishes files from sub-directories.
type Kind int

const (
	File Kind = iota + 1
	Directory
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Directory:
		return "directory"
	default:
		return "unknown"
	}
}

// Entry is one immediate child of the scanned directory.
type Entry struct {
	Path string `json:"path"`
	Kind Kind   `json:"kind"`
	Size int64  `json:"size"`
}

// Name returns the entry's base name.
func (e Entry) Name() string { return filepath.Base(e.Path) }

// Scan lists the immediate children of root. A listing failure is returned
// as a ScanFailure and no entries are returned with it.
func Scan(fs fsys.FS, root string) ([]Entry, error) {
	paths, err := fs.ReadDir(root)
	if err != nil {
		return nil, &errlog.Error{Kind: errlog.ScanFailure, Path: root, Err: err}
	}

	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, classify(fs, p))
	}
	slog.Debug("scanned directory", "root", root, "entries", len(entries))
	return entries, nil
}

// classify resolves one level of symlink; a link that cannot be resolved
// is treated as a file.
func classify(fs fsys.FS, path string) Entry {
	info, err := fs.Stat(path)
	if err != nil {
		info, err = fs.Lstat(path)
		if err != nil {
			slog.Debug("stat failed, assuming file", "path", path, "error", err)
			return Entry{Path: path, Kind: File}
		}
	}
	if info.IsDir() {
		return Entry{Path: path, Kind: Directory}
	}
	return Entry{Path: path, Kind: File, Size: info.Size()}
}

// Count returns the number of files and directories.
func Count(entries []Entry) (files, dirs int) {
	for _, e := range entries {
		switch e.Kind {
		case File:
			files++
		case Directory:
			dirs++
		}
	}
	return files, dirs
}
