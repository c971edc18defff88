package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-sitefile"
	"github.com/goliatone/go-sitefile/internal/logging"
	"github.com/spf13/cobra"
)

// Version information, overridden by main.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// moduleBuilder is swapped in tests to inject backends.
var moduleBuilder = func(cfg sitefile.Config, opts ...sitefile.Option) (*sitefile.Module, error) {
	return sitefile.New(cfg, opts...)
}

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath  string
	envFile     string
	root        string
	storage     string
	logProvider string
	logLevel    string
	logFormat   string
	skipInvalid bool
	concurrency int
	pretty      bool
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string) int {
	cmd := NewRootCommand(os.Stdout, os.Stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCommand builds the command tree writing results to out and logs to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "sitefile",
		Short: "Classify and load site source files",
		Long: `sitefile classifies files of a site source tree (includes/, layouts/, pages/)
by kind, locale and format, and loads them with their header metadata.

Paths are given relative to the source root, for example:
  sitefile describe pages/blog/hello.en.md
  sitefile load pages/index.md layouts/base.html
  sitefile scan pages
  sitefile watch --root ./site`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to a YAML config file")
	pf.StringVar(&flags.envFile, "env-file", ".env", "Dotenv file applied before SITEFILE_* variables")
	pf.StringVar(&flags.root, "root", "", "Source root directory")
	pf.StringVar(&flags.storage, "storage", "", "Storage provider (os, memory, s3)")
	pf.StringVar(&flags.logProvider, "log-provider", "", "Logging provider (console, gologger, none)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Minimum log level")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format for gologger (json, console, pretty)")
	pf.BoolVar(&flags.skipInvalid, "skip-invalid", false, "Skip paths that do not follow the source tree layout")
	pf.IntVar(&flags.concurrency, "concurrency", 0, "Maximum concurrent reads")
	pf.BoolVar(&flags.pretty, "pretty", false, "Indent JSON output")

	root.AddCommand(newDescribeCommand(flags))
	root.AddCommand(newLoadCommand(flags))
	root.AddCommand(newScanCommand(flags))
	root.AddCommand(newWatchCommand(flags))
	root.AddCommand(newVersionCommand())
	return root
}

// buildModule resolves configuration and applies flag overrides. Flags only
// win when set explicitly.
func buildModule(cmd *cobra.Command, flags *globalFlags) (*sitefile.Module, error) {
	cfg, err := sitefile.LoadConfig(sitefile.LoadOptions{
		Path:    flags.configPath,
		EnvFile: flags.envFile,
	})
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("root") {
		cfg.Root = flags.root
	}
	if changed("storage") {
		cfg.Storage.Provider = flags.storage
	}
	if changed("log-provider") {
		cfg.Logging.Provider = flags.logProvider
	}
	if changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if changed("log-format") {
		cfg.Logging.Format = flags.logFormat
	}
	if changed("skip-invalid") {
		cfg.Loader.SkipInvalid = flags.skipInvalid
	}
	if changed("concurrency") {
		cfg.Loader.Concurrency = flags.concurrency
	}

	module, err := moduleBuilder(cfg, sitefile.WithLogWriter(cmd.ErrOrStderr()))
	if err != nil {
		return nil, fmt.Errorf("bootstrap module: %w", err)
	}
	logging.CLILogger(module.Container().LoggerProvider()).Debug("cli.module.ready",
		"command", cmd.Name(),
		"root", cfg.Root,
		"storage", cfg.Storage.Provider,
	)
	return module, nil
}
