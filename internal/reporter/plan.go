package reporter

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ppiankov/sortforge/internal/classify"
)

// PlanRow summarizes what a pass would do with one extension group.
type PlanRow struct {
	Extension   string
	Destination string
	Files       int
	Bytes       uint64
}

// BuildPlan turns groups into plan rows. The empty-extension group is kept
// so the preview shows which files stay in place.
func BuildPlan(root string, groups []classify.Group) []PlanRow {
	rows := make([]PlanRow, 0, len(groups))
	for _, g := range groups {
		row := PlanRow{Extension: g.Extension, Files: len(g.Members)}
		if g.Organizable() {
			row.Destination = filepath.Join(root, g.Extension)
		}
		for _, m := range g.Members {
			if m.Size > 0 {
				row.Bytes += uint64(m.Size)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// RenderPlan renders the plan as a table.
func RenderPlan(rows []PlanRow) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault // keep humanize units as written
	tw.AppendHeader(table.Row{"Extension", "Destination", "Files", "Size"})

	var files int
	var bytes uint64
	for _, r := range rows {
		ext, dest := r.Extension, r.Destination
		if ext == "" {
			ext = "(none)"
			dest = "left in place"
		}
		tw.AppendRow(table.Row{ext, dest, r.Files, humanize.Bytes(r.Bytes)})
		files += r.Files
		bytes += r.Bytes
	}
	tw.AppendFooter(table.Row{"", fmt.Sprintf("%d groups", len(rows)), files, humanize.Bytes(bytes)})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return tw.Render()
}
