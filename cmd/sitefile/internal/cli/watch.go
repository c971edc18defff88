package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	filescmd "github.com/goliatone/go-sitefile/internal/commands/files"
	"github.com/goliatone/go-sitefile/internal/watch"
)

type changeView struct {
	Path    string      `json:"path"`
	Op      watch.Op    `json:"op"`
	Entries []entryView `json:"entries,omitempty"`
	Error   *errorView  `json:"error,omitempty"`
}

func newWatchCommand(flags *globalFlags) *cobra.Command {
	var settle time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload source files as they change on disk",
		Long: `Watch includes/, layouts/ and pages/ under the source root and print one
JSON line per change. Created and modified files are loaded again; removed
files are reported by path. Runs until interrupted.

Examples:
  sitefile watch --root ./site
  sitefile watch --settle 250ms --skip-invalid`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := buildModule(cmd, flags)
			if err != nil {
				return err
			}
			container := module.Container()
			watcher, err := container.Watcher()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("settle") {
				watch.WithSettle(settle)(watcher)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			skipInvalid := container.Config().Loader.SkipInvalid
			out := cmd.OutOrStdout()
			return watcher.Run(ctx, func(ctx context.Context, ev watch.Event) {
				view := changeView{Path: ev.Path, Op: ev.Op}
				switch {
				case ev.Err != nil:
					if skipInvalid {
						return
					}
					errView := newErrorView(ev.Err)
					view.Error = &errView
				case !ev.Op.Removed():
					var envelope filescmd.ResultEnvelope
					execErr := container.LoadHandler().Execute(ctx, filescmd.LoadFilesCommand{
						Paths: []string{ev.Path},
						Sink:  func(env filescmd.ResultEnvelope) { envelope = env },
					})
					loaded := newLoadView(envelope.Entries, envelope.Errors)
					view.Entries = loaded.Entries
					if execErr != nil {
						errView := newErrorView(execErr)
						if len(loaded.Errors) > 0 {
							errView = loaded.Errors[0]
						}
						view.Error = &errView
					}
				}
				// Output errors surface on the next write; the watch keeps running.
				_ = writeJSON(out, view, flags.pretty)
			})
		},
	}
	cmd.Flags().DurationVar(&settle, "settle", 0, "Quiet period before a change is reported (overrides watch.settle)")
	return cmd
}
