package organize

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/sortforge/internal/classify"
	"github.com/ppiankov/sortforge/internal/errlog"
	"github.com/ppiankov/sortforge/internal/fsys"
)

// Result tallies one organizing pass.
type Result struct {
	RunID          string `json:"run_id"`
	FoldersCreated int    `json:"folders_created"`
	FilesMoved     int    `json:"files_moved"`
}

// EventKind identifies a commentary event.
type EventKind int

const (
	FolderCreated EventKind = iota + 1
	FolderExists
	FolderFailed
	FileMoved
	MoveFailed
)

// Event is emitted as each step completes.
type Event struct {
	Kind      EventKind
	Extension string
	Path      string // file path for moves, folder path otherwise
	Dest      string
	Err       error
}

// Option configures an Organizer.
type Option func(*Organizer)

// WithNotify sets the commentary callback.
func WithNotify(fn func(Event)) Option {
	return func(o *Organizer) { o.notify = fn }
}

// WithPace pauses between groups. It has no effect on outcomes.
func WithPace(d time.Duration) Option {
	return func(o *Organizer) { o.pace = d }
}

// Organizer moves files into per-extension folders under root.
type Organizer struct {
	fs     fsys.FS
	root   string
	notify func(Event)
	pace   time.Duration
}

// New creates an organizer for root.
func New(fs fsys.FS, root string, opts ...Option) *Organizer {
	o := &Organizer{fs: fs, root: root}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Destination returns the folder a group's files are moved into.
func (o *Organizer) Destination(ext string) string {
	return filepath.Join(o.root, ext)
}

// Organize runs ensure-folder and move for every organizable group.
// Failures are recorded in log and never stop the pass.
func (o *Organizer) Organize(groups []classify.Group, log *errlog.Log) Result {
	res := Result{RunID: uuid.NewString()}
	slog.Debug("organizing", "run", res.RunID, "root", o.root, "groups", len(groups))

	for i, g := range classify.Organizable(groups) {
		if i > 0 && o.pace > 0 {
			time.Sleep(o.pace)
		}
		dest := o.Destination(g.Extension)

		created, err := o.ensureFolder(dest)
		if err != nil {
			log.Add(&errlog.Error{Kind: errlog.FolderCreationFailure, Path: g.Extension, Err: err})
			o.emit(Event{Kind: FolderFailed, Extension: g.Extension, Path: dest, Err: err})
			slog.Warn("folder creation failed", "ext", g.Extension, "error", err)
			continue
		}
		if created {
			res.FoldersCreated++
			o.emit(Event{Kind: FolderCreated, Extension: g.Extension, Path: dest})
		} else {
			o.emit(Event{Kind: FolderExists, Extension: g.Extension, Path: dest})
		}

		for _, f := range g.Members {
			if !o.stillPending(f.Path, g.Extension) {
				slog.Debug("skipping stale entry", "path", f.Path)
				continue
			}
			moved, err := o.fs.Move(f.Path, dest)
			if err != nil {
				log.Add(&errlog.Error{Kind: errlog.MoveFailure, Path: f.Path, Err: err})
				o.emit(Event{Kind: MoveFailed, Extension: g.Extension, Path: f.Path, Err: err})
				slog.Warn("move failed", "path", f.Path, "error", err)
				continue
			}
			res.FilesMoved++
			o.emit(Event{Kind: FileMoved, Extension: g.Extension, Path: f.Path, Dest: moved})
		}
	}

	slog.Info("organize complete", "run", res.RunID, "root", o.root,
		"folders_created", res.FoldersCreated, "files_moved", res.FilesMoved, "errors", log.Len())
	return res
}

// ensureFolder treats any existing entry at dest as the folder, even when
// it is not a directory; moves into it then fail individually.
func (o *Organizer) ensureFolder(dest string) (bool, error) {
	if fsys.Exists(o.fs, dest) {
		return false, nil
	}
	if err := o.fs.Mkdir(dest); err != nil {
		return false, err
	}
	return true, nil
}

// stillPending re-checks a listed file before moving it: the name must
// still carry the extension and the file must still be where it was listed.
func (o *Organizer) stillPending(path, ext string) bool {
	if !strings.Contains(filepath.Base(path), ext) {
		return false
	}
	return fsys.Exists(o.fs, path)
}

func (o *Organizer) emit(e Event) {
	if o.notify != nil {
		o.notify(e)
	}
}
