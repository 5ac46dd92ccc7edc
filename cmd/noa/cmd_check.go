package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/noa/codebase"
	"github.com/dhamidi/noa/format"
)

func (a *app) newCheckCmd() *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse Noa files and report their diagnostics",
		Long: `Parse every Noa file under the given files and directories (default: the
current directory) and report their diagnostics. The exit status is 1 if
any error was found.

With --watch the single directory given is polled for changes and changed
files are checked again until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			if watch {
				if len(args) > 1 {
					return fmt.Errorf("--watch takes at most one directory, got %d paths", len(args))
				}
				return a.watch(cmd.Context(), args[0], interval)
			}
			return a.check(cmd.Context(), args)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "check again whenever a file changes")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "polling interval for --watch")

	return cmd
}

func (a *app) newRenderer() *format.DiagnosticRenderer {
	if a.cfg.Format == format.FormatJSON {
		return format.NewDiagnosticJSONRenderer(a.stdout)
	}
	return format.NewDiagnosticRenderer(a.stdout, a.palette(a.stdout))
}

// collect expands directories into the source files below them.
func (a *app) collect(ctx context.Context, args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := a.fs.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := codebase.New(a.fs, arg, a.cfg).Paths(ctx)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

func (a *app) check(ctx context.Context, args []string) error {
	paths, err := a.collect(ctx, args)
	if err != nil {
		return err
	}

	c := codebase.New(a.fs, a.workDir, a.cfg)
	if err := c.ScanFiles(ctx, paths); err != nil {
		return err
	}

	files := c.Files()
	r := a.newRenderer()
	if err := renderFiles(r, files); err != nil {
		return err
	}
	if err := r.WriteSummary(len(files)); err != nil {
		return err
	}
	if errs, _ := r.Counts(); errs > 0 {
		return errDiagnostics
	}
	return nil
}

func renderFiles(r *format.DiagnosticRenderer, files []*codebase.File) error {
	for _, f := range files {
		if err := r.Render(f.Source, f.Diagnostics); err != nil {
			return err
		}
	}
	return nil
}

// watch checks root whenever the watcher reports a change. It returns
// when ctx is done.
func (a *app) watch(ctx context.Context, root string, interval time.Duration) error {
	c := codebase.New(a.fs, root, a.cfg)
	w := codebase.NewFileWatcher(c, interval)
	w.OnChange = func(change codebase.Change) {
		for _, path := range change.Removed {
			fmt.Fprintf(a.stdout, "%s: removed\n", path)
		}
		r := a.newRenderer()
		if err := renderFiles(r, change.Updated); err != nil {
			fmt.Fprintf(a.stderr, "noa: %s\n", err)
			return
		}
		if err := r.WriteSummary(len(change.Updated)); err != nil {
			fmt.Fprintf(a.stderr, "noa: %s\n", err)
		}
	}

	w.Start(ctx)
	<-ctx.Done()
	w.Stop()
	return nil
}
