package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sortforge/internal/errlog"
	"github.com/ppiankov/sortforge/internal/reporter"
)

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [dir]",
		Short: "Archive the directory into its backup folder",
		Long:  "Create a dated zip snapshot of the directory tree and file it into the backup folder (backup_dir in the config, \"backup\" by default).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTarget(args)
			if err != nil {
				return err
			}
			text := reporter.NewTextReporter(cmd.OutOrStdout(), isTerminal())
			art, err := t.backup(text, errlog.New())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", art.ArchivePath)
			return nil
		},
	}
}
