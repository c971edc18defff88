package cli

import (
	filescmd "github.com/goliatone/go-sitefile/internal/commands/files"
	"github.com/spf13/cobra"
)

func newLoadCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "load <path>...",
		Short: "Load files and print their metadata",
		Long: `Read each path from the configured storage, extract header metadata and
print the entries as JSON. The command fails when any file could not be loaded.

Examples:
  sitefile load pages/index.md
  sitefile load --skip-invalid pages/index.md README.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := buildModule(cmd, flags)
			if err != nil {
				return err
			}

			var envelope filescmd.ResultEnvelope
			execErr := module.Container().LoadHandler().Execute(cmd.Context(), filescmd.LoadFilesCommand{
				Paths: args,
				Sink:  func(env filescmd.ResultEnvelope) { envelope = env },
			})
			return finishBatch(cmd, flags, envelope, execErr)
		},
	}
}

// finishBatch prints whatever the handler delivered before reporting its error.
func finishBatch(cmd *cobra.Command, flags *globalFlags, envelope filescmd.ResultEnvelope, execErr error) error {
	if envelope.Operation != "" {
		if err := writeJSON(cmd.OutOrStdout(), newLoadView(envelope.Entries, envelope.Errors), flags.pretty); err != nil {
			return err
		}
	}
	return execErr
}
