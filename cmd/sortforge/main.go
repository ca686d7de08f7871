package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/sortforge/internal/cli"
	"github.com/ppiankov/sortforge/internal/organize"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var lockErr *organize.LockedError
		if errors.As(err, &lockErr) {
			os.Exit(3)
		}
		os.Exit(1)
	}
}
