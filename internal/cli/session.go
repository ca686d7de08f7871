package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sortforge/internal/errlog"
	"github.com/ppiankov/sortforge/internal/organize"
	"github.com/ppiankov/sortforge/internal/reporter"
	"github.com/ppiankov/sortforge/internal/scan"
	"github.com/ppiankov/sortforge/internal/session"
)

// sessionActions binds the interactive session to a target directory.
type sessionActions struct {
	t    *target
	text *reporter.TextReporter
}

func (a sessionActions) Listing() (string, error) {
	entries, err := scan.Scan(a.t.fs, a.t.root)
	if err != nil {
		return "", err
	}
	return a.text.Listing(a.t.root, entries), nil
}

func (a sessionActions) Organize(log *errlog.Log) (organize.Result, error) {
	return a.t.organize(a.text, log)
}

func (a sessionActions) Backup(log *errlog.Log) error {
	_, err := a.t.backup(a.text, log)
	return err
}

func runSession(cmd *cobra.Command, args []string) error {
	t, err := resolveTarget(args)
	if err != nil {
		return err
	}

	isTTY := isTerminal()
	text := reporter.NewTextReporter(os.Stdout, isTTY)
	c := session.New(session.Config{
		Port:       session.NewTerminalPort(os.Stdin, os.Stdout, isTTY),
		Actions:    sessionActions{t: t, text: text},
		Reporter:   text,
		ShowErrors: t.settings.ShowErrorList(),
	})
	return c.Run()
}
