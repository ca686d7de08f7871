package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sortforge/internal/errlog"
	"github.com/ppiankov/sortforge/internal/reporter"
	"github.com/ppiankov/sortforge/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var (
		pollMode     bool
		debounce     time.Duration
		pollInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Keep a directory organized as files arrive",
		Long:  "Organize the directory once, then watch it and run another organizing pass whenever new files with an extension appear.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTarget(args)
			if err != nil {
				return err
			}
			if wc := t.settings.Watch; wc != nil {
				if !cmd.Flags().Changed("poll") {
					pollMode = wc.Poll
				}
				if !cmd.Flags().Changed("debounce") && wc.Debounce > 0 {
					debounce = wc.Debounce
				}
				if !cmd.Flags().Changed("poll-interval") && wc.PollInterval > 0 {
					pollInterval = wc.PollInterval
				}
			}

			text := reporter.NewTextReporter(os.Stdout, isTerminal())
			showErrors := t.settings.ShowErrorList()
			pass := func(ctx context.Context) error {
				log := errlog.New()
				res, err := t.organize(text, log)
				if err != nil {
					return err
				}
				if res.FilesMoved > 0 || log.Len() > 0 {
					text.PrintSummary(res, log, showErrors)
				}
				return nil
			}

			w, err := watch.New(watch.Config{
				Root:         t.root,
				FS:           t.fs,
				Pass:         pass,
				PollMode:     pollMode,
				Debounce:     debounce,
				PollInterval: pollInterval,
			})
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return w.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&pollMode, "poll", false, "poll instead of using filesystem notifications")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "quiet period after the last event before organizing")
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", 5*time.Second, "polling interval with --poll")

	return cmd
}
