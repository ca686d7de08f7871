package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/sortforge/internal/backup"
	"github.com/ppiankov/sortforge/internal/errlog"
	"github.com/ppiankov/sortforge/internal/organize"
	"github.com/ppiankov/sortforge/internal/scan"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[2m"
)

const noErrors = "Wow! No errors, isn't that great?"

// TextReporter writes human-readable output to a writer.
type TextReporter struct {
	w     io.Writer
	color bool
}

// NewTextReporter creates a text reporter.
// If w is nil, defaults to os.Stdout.
// color enables ANSI codes.
func NewTextReporter(w io.Writer, color bool) *TextReporter {
	if w == nil {
		w = os.Stdout
	}
	return &TextReporter{w: w, color: color}
}

// Listing renders the directory contents, files marked "•" and folders "○".
func (r *TextReporter) Listing(root string, entries []scan.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n %s%s%s ⌂ Directory Contents:\n\n", r.c(colorCyan), root, r.c(colorReset))
	fmt.Fprintf(&b, "   %s(NOTE! Under main directory: \"•\" = File and \"○\" = Folder.)%s\n\n", r.c(colorDim), r.c(colorReset))
	files, dirs := scan.Count(entries)
	fmt.Fprintf(&b, "   %s%d files, %d folders%s\n\n", r.c(colorDim), files, dirs, r.c(colorReset))
	for _, e := range entries {
		switch e.Kind {
		case scan.File:
			fmt.Fprintf(&b, "  • %s\n", e.Path)
		case scan.Directory:
			fmt.Fprintf(&b, "  ○ %s\n", e.Path)
		}
	}
	return b.String()
}

// Event writes one line of running commentary for an organizing step.
func (r *TextReporter) Event(e organize.Event) {
	switch e.Kind {
	case organize.FolderCreated:
		fmt.Fprintf(r.w, "%sSuccessfully created the directory: %s.%s\n", r.c(colorGreen), e.Extension, r.c(colorReset))
	case organize.FolderExists:
		fmt.Fprintf(r.w, "%sDirectory %s already exists.%s\n", r.c(colorDim), e.Extension, r.c(colorReset))
	case organize.FolderFailed:
		fmt.Fprintf(r.w, "%sCreation of the directory: %s failed. %v%s\n", r.c(colorRed), e.Extension, e.Err, r.c(colorReset))
	case organize.FileMoved:
		fmt.Fprintf(r.w, "  moved %s → %s\n", e.Path, e.Dest)
	case organize.MoveFailed:
		fmt.Fprintf(r.w, "%s  Error: %v%s\n", r.c(colorRed), e.Err, r.c(colorReset))
	}
}

// BackupStep writes commentary for a completed backup step.
func (r *TextReporter) BackupStep(s backup.Step, path string) {
	switch s {
	case backup.FolderReady:
		fmt.Fprintf(r.w, "Backup folder ready: %s\n", path)
	case backup.ArchiveCreated:
		fmt.Fprintf(r.w, "Archive created: %s\n", path)
	case backup.ArchiveFiled:
		fmt.Fprintf(r.w, "%sDone. Archive filed as %s%s\n", r.c(colorGreen), path, r.c(colorReset))
	}
}

// PrintSummary writes the pass tally and the error log.
func (r *TextReporter) PrintSummary(res organize.Result, log *errlog.Log, showErrors bool) {
	fmt.Fprint(r.w, r.Summary(res, log, showErrors))
}

// Summary renders what PrintSummary writes.
func (r *TextReporter) Summary(res organize.Result, log *errlog.Log, showErrors bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, " Task Complete. %d directories created and %d files moved.\n", res.FoldersCreated, res.FilesMoved)
	b.WriteString(r.Errors(log, showErrors))
	return b.String()
}

// Errors renders the error count and, if requested, every record.
func (r *TextReporter) Errors(log *errlog.Log, showErrors bool) string {
	if log == nil || log.Len() == 0 {
		return noErrors + "\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%sError Count: %d%s\n", r.c(colorYellow), log.Len(), r.c(colorReset))
	if showErrors {
		for _, rec := range log.Records() {
			fmt.Fprintf(&b, "%s : %s\n", rec.Message, rec.Source)
		}
	}
	return b.String()
}

func (r *TextReporter) c(code string) string {
	if !r.color {
		return ""
	}
	return code
}
