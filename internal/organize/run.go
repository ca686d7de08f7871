package organize

import (
	"fmt"

	"github.com/ppiankov/sortforge/internal/classify"
	"github.com/ppiankov/sortforge/internal/errlog"
	"github.com/ppiankov/sortforge/internal/fsys"
	"github.com/ppiankov/sortforge/internal/scan"
)

// Run performs one organizing pass over root: scan, classify, organize.
// A scan failure is returned before anything is touched.
func Run(fs fsys.FS, root string, log *errlog.Log, opts ...Option) (Result, error) {
	entries, err := scan.Scan(fs, root)
	if err != nil {
		return Result{}, fmt.Errorf("organize %s: %w", root, err)
	}
	return New(fs, root, opts...).Organize(classify.Classify(entries), log), nil
}
