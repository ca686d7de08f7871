package classify

import (
	"path/filepath"
	"strings"

	"github.com/ppiankov/sortforge/internal/scan"
)

// Group is the set of files sharing one extension. An empty Extension is
// the "no extension" group, which is never organized.
type Group struct {
	Extension string       `json:"extension"`
	Members   []scan.Entry `json:"members"`
}

// Organizable reports whether files of this group get a folder.
func (g Group) Organizable() bool { return g.Extension != "" }

// Extension returns the part of path's base name from the last '.' on,
// dot included. Leading dots do not start an extension, and a trailing
// dot yields none.
//
//	report.tar.gz -> .gz
//	.bashrc       -> ""
//	.config.yml   -> .yml
//	notes.        -> ""
func Extension(path string) string {
	name := strings.TrimLeft(filepath.Base(path), ".")
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// Classify partitions the file entries by extension. Groups appear in the
// order their first member appears; members keep input order.
func Classify(entries []scan.Entry) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, e := range entries {
		if e.Kind != scan.File {
			continue
		}
		ext := Extension(e.Path)
		i, ok := index[ext]
		if !ok {
			i = len(groups)
			index[ext] = i
			groups = append(groups, Group{Extension: ext})
		}
		groups[i].Members = append(groups[i].Members, e)
	}
	return groups
}

// Organizable returns the groups that get a destination folder.
func Organizable(groups []Group) []Group {
	var out []Group
	for _, g := range groups {
		if g.Organizable() {
			out = append(out, g)
		}
	}
	return out
}
