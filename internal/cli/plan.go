package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ppiankov/sortforge/internal/classify"
	"github.com/ppiankov/sortforge/internal/reporter"
	"github.com/ppiankov/sortforge/internal/scan"
)

func newPlanCmd() *cobra.Command {
	var useTUI bool

	cmd := &cobra.Command{
		Use:   "plan [dir]",
		Short: "Preview which folders would be created and which files moved",
		Long:  "Scan the directory and show the extension groups an organizing pass would act on, without touching anything.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTarget(args)
			if err != nil {
				return err
			}
			entries, err := scan.Scan(t.fs, t.root)
			if err != nil {
				return err
			}
			groups := classify.Classify(entries)

			if useTUI {
				if !isTerminal() {
					return fmt.Errorf("--tui requires a terminal")
				}
				p := tea.NewProgram(reporter.NewPlanModel(t.root, groups), tea.WithAltScreen())
				_, err := p.Run()
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), reporter.RenderPlan(reporter.BuildPlan(t.root, groups)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&useTUI, "tui", false, "interactive preview")

	return cmd
}
