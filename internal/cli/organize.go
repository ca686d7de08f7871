package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sortforge/internal/backup"
	"github.com/ppiankov/sortforge/internal/errlog"
	"github.com/ppiankov/sortforge/internal/reporter"
)

func newOrganizeCmd() *cobra.Command {
	var (
		withBackup bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "organize [dir]",
		Short: "Run one organizing pass without prompting",
		Long:  "Move every file with an extension into a folder named after it. Failures are reported per folder and per file; the pass continues past them.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("invalid format %q (use text or json)", format)
			}
			t, err := resolveTarget(args)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			out := stdout
			// json keeps stdout clean for the report
			if format == "json" {
				out = io.Discard
			}
			text := reporter.NewTextReporter(out, isTerminal())
			log := errlog.New()

			var art *backup.Artifact
			if withBackup {
				a, err := t.backup(text, log)
				if err != nil {
					return fmt.Errorf("backup before organizing: %w", err)
				}
				art = &a
			}

			res, err := t.organize(text, log)
			if err != nil {
				return err
			}

			if format == "json" {
				return reporter.WriteJSON(stdout, reporter.NewPassReport(t.root, res, log, art))
			}
			text.PrintSummary(res, log, t.settings.ShowErrorList())
			return nil
		},
	}

	cmd.Flags().BoolVar(&withBackup, "backup", false, "archive the directory before organizing")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}
