package cli

import (
	filescmd "github.com/goliatone/go-sitefile/internal/commands/files"
	"github.com/spf13/cobra"
)

func newDescribeCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <path>...",
		Short: "Classify paths without reading them",
		Long: `Classify each path by kind, directory, name, locale and format.
Unrecognised paths are reported with their error code.

Examples:
  sitefile describe pages/blog/hello.en-US.md
  sitefile describe layouts/base.html includes/nav.htm`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := buildModule(cmd, flags)
			if err != nil {
				return err
			}

			var envelope filescmd.ResultEnvelope
			err = module.Container().DescribeHandler().Execute(cmd.Context(), filescmd.DescribePathsCommand{
				Paths: args,
				Sink:  func(env filescmd.ResultEnvelope) { envelope = env },
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), newDescribeViews(envelope.Described), flags.pretty)
		},
	}
}
