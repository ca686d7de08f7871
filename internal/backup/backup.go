package backup

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ppiankov/sortforge/internal/errlog"
	"github.com/ppiankov/sortforge/internal/fsys"
)

const (
	DefaultFolder = "backup"
	DefaultPrefix = "backup"
)

// Artifact is a snapshot and the folder it was filed into.
type Artifact struct {
	ArchivePath  string `json:"archive_path"`
	BackupFolder string `json:"backup_folder"`
}

// Step identifies a backup milestone for commentary.
type Step int

const (
	FolderReady Step = iota + 1
	ArchiveCreated
	ArchiveFiled
)

// Option configures an Archiver.
type Option func(*Archiver)

// WithClock overrides time.Now for archive naming.
func WithClock(now func() time.Time) Option {
	return func(a *Archiver) { a.now = now }
}

// WithPrefix sets the archive name prefix.
func WithPrefix(prefix string) Option {
	return func(a *Archiver) { a.prefix = prefix }
}

// WithNotify sets the commentary callback.
func WithNotify(fn func(Step, string)) Option {
	return func(a *Archiver) { a.notify = fn }
}

// Archiver snapshots a directory into a dated archive.
type Archiver struct {
	fs     fsys.FS
	zip    fsys.Archiver
	now    func() time.Time
	prefix string
	notify func(Step, string)
}

// New creates an archiver.
func New(fs fsys.FS, zip fsys.Archiver, opts ...Option) *Archiver {
	a := &Archiver{fs: fs, zip: zip, now: time.Now, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ArchiveName returns the dated archive file name for t.
func (a *Archiver) ArchiveName(t time.Time) string {
	return fmt.Sprintf("%s_%s.zip", a.prefix, t.Format("2006-01-02"))
}

// Backup ensures dest exists, archives root next to it and files the
// archive into dest. Every failure is recorded in log and returned. A
// failed relocation leaves the archive where it was created.
func (a *Archiver) Backup(root, dest string, log *errlog.Log) (Artifact, error) {
	if !fsys.Exists(a.fs, dest) {
		if err := a.fs.Mkdir(dest); err != nil {
			return Artifact{}, a.fail(log, errlog.FolderCreationFailure, dest, err)
		}
		slog.Debug("created backup folder", "path", dest)
	}
	a.emit(FolderReady, dest)

	archive := filepath.Join(root, a.ArchiveName(a.now()))
	if err := a.zip.Archive(root, archive, dest); err != nil {
		return Artifact{}, a.fail(log, errlog.ArchiveCreationFailure, archive, err)
	}
	a.emit(ArchiveCreated, archive)

	filed, err := a.fs.Move(archive, dest)
	if err != nil {
		return Artifact{ArchivePath: archive}, a.fail(log, errlog.ArchiveRelocationFailure, archive, err)
	}
	a.emit(ArchiveFiled, filed)

	slog.Info("backup complete", "root", root, "archive", filed)
	return Artifact{ArchivePath: filed, BackupFolder: dest}, nil
}

func (a *Archiver) fail(log *errlog.Log, kind errlog.Kind, path string, err error) error {
	e := &errlog.Error{Kind: kind, Path: path, Err: err}
	log.Add(e)
	slog.Warn("backup failed", "kind", kind, "path", path, "error", err)
	return e
}

func (a *Archiver) emit(s Step, path string) {
	if a.notify != nil {
		a.notify(s, path)
	}
}
