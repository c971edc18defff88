package cli

import (
	filescmd "github.com/goliatone/go-sitefile/internal/commands/files"
	"github.com/spf13/cobra"
)

func newScanCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [directory]",
		Short: "Load every source file below a directory",
		Long: `List the configured storage below directory (the whole root when omitted)
and load every file found. Combine with --skip-invalid to ignore files that
are not part of the source tree layout.

Examples:
  sitefile scan
  sitefile scan pages --skip-invalid`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := buildModule(cmd, flags)
			if err != nil {
				return err
			}

			msg := filescmd.ScanDirectoryCommand{}
			if len(args) == 1 {
				msg.Directory = args[0]
			}
			var envelope filescmd.ResultEnvelope
			msg.Sink = func(env filescmd.ResultEnvelope) { envelope = env }

			execErr := module.Container().ScanHandler().Execute(cmd.Context(), msg)
			return finishBatch(cmd, flags, envelope, execErr)
		},
	}
}
