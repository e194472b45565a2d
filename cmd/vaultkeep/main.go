package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/keshon/vaultkeep/internal/cli"
	"github.com/keshon/vaultkeep/internal/errs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "vaultkeep:", err)
	var dirty *errs.DirtyTreeError
	var ambiguous *errs.AmbiguousRefError
	switch {
	case errors.As(err, &dirty):
		for _, p := range dirty.Paths {
			fmt.Fprintln(os.Stderr, "  -", p)
		}
	case errors.As(err, &ambiguous):
		for _, id := range ambiguous.Candidates {
			fmt.Fprintln(os.Stderr, "  -", id)
		}
	}
	cat, _ := errs.CategoryOf(err)
	os.Exit(errs.ExitCode(cat))
}
