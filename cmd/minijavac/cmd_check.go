package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dhamidi/minijavac/java/codebase"
	"github.com/dhamidi/minijavac/java/parser"
)

func newCheckCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Parse every source file below a directory and report diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			cb := codebase.New(dir, parser.WithMaxDepth(a.cfg.MaxDepth))
			out := cmd.OutOrStdout()

			if watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()

				w := codebase.NewFileWatcher(cb)
				w.OnChange = func(path string, info *codebase.FileInfo) {
					report(out, path, info, a.cfg.ShowWarnings)
				}
				w.Start()
				<-ctx.Done()
				w.Stop()
				return nil
			}

			if err := cb.ScanAll(); err != nil {
				return fmt.Errorf("scan %s: %w", dir, err)
			}
			paths := cb.Paths()
			failed := 0
			for _, path := range paths {
				if report(out, path, cb.GetFile(path), a.cfg.ShowWarnings) {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed to parse", failed, len(paths))
			}
			fmt.Fprintf(out, "%d files ok\n", len(paths))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep polling and report files as they change")

	return cmd
}

// report prints the diagnostics of one file and reports whether it failed
// to parse. A nil info means the file was removed.
func report(w io.Writer, path string, info *codebase.FileInfo, warnings bool) bool {
	if info == nil {
		fmt.Fprintf(w, "%s: removed\n", path)
		return false
	}
	if warnings {
		for _, d := range info.Warnings {
			fmt.Fprintf(w, "%s: %s\n", path, d.Error())
		}
	}
	if info.ParseErr != nil {
		fmt.Fprintf(w, "%s: %s\n", path, info.ParseErr.Error())
		return true
	}
	return false
}
