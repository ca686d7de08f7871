package reporter

import (
	"encoding/json"
	"io"

	"github.com/ppiankov/sortforge/internal/backup"
	"github.com/ppiankov/sortforge/internal/errlog"
	"github.com/ppiankov/sortforge/internal/organize"
)

// PassReport is the machine-readable outcome of one organizing pass.
type PassReport struct {
	RunID          string           `json:"run_id"`
	Root           string           `json:"root"`
	FoldersCreated int              `json:"folders_created"`
	FilesMoved     int              `json:"files_moved"`
	Errors         []errlog.Record  `json:"errors"`
	Backup         *backup.Artifact `json:"backup,omitempty"`
}

// NewPassReport assembles a report from a result and its error log.
func NewPassReport(root string, res organize.Result, log *errlog.Log, art *backup.Artifact) PassReport {
	errs := []errlog.Record{}
	if log != nil {
		errs = log.Records()
	}
	return PassReport{
		RunID:          res.RunID,
		Root:           root,
		FoldersCreated: res.FoldersCreated,
		FilesMoved:     res.FilesMoved,
		Errors:         errs,
		Backup:         art,
	}
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, rep PassReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
