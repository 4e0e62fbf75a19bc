package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/cloudcull-console/pkg/runtime/terminal/commands"
	"github.com/de-tools/cloudcull-console/pkg/runtime/terminal/export"
	"github.com/de-tools/cloudcull-console/pkg/services/config"
	"github.com/de-tools/cloudcull-console/pkg/services/sources"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	sources  sources.Registry
	reporter *export.Reporter
	globals  *commands.Globals
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Sources sources.Registry
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Sources == nil {
		opts.Sources = sources.NewDefaultRegistry()
	}

	cli := &CLI{
		sources:  opts.Sources,
		reporter: export.NewReporter(opts.Output),
		globals:  &commands.Globals{},
	}

	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd(out io.Writer) *cobra.Command {
	watch := commands.NewWatchCmd(cli.globals, cli.sources)

	cmd := &cobra.Command{
		Use:           "cloudcull",
		Short:         "CloudCull audit console",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          watch.RunE,
	}
	cmd.SetOut(out)
	cmd.Flags().AddFlagSet(watch.Flags())

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cli.globals.ConfigPath, "config", "c", "", "Path to a settings file (yaml, toml or json)")
	flags.StringVar(&cli.globals.ProfilesPath, "profiles", config.DefaultProfilesPath(), "Path to the profiles file")
	flags.StringVarP(&cli.globals.Profile, "profile", "p", "", "Named backend from the profiles file")
	flags.StringVar(&cli.globals.LogLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	cmd.AddCommand(watch)
	cmd.AddCommand(commands.NewSnapshotCmd(cli.globals, cli.sources, cli.reporter))
	cmd.AddCommand(commands.NewProfilesCmd(cli.globals))

	return cmd
}
