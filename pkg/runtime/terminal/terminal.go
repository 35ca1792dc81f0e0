package terminal

import (
	"io"
	"os"

	"github.com/lex-tools/ledes-forge/pkg/runtime/terminal/commands"
	"github.com/lex-tools/ledes-forge/pkg/runtime/terminal/export"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	logger   zerolog.Logger
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Logger zerolog.Logger
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		logger:   opts.Logger,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledes-forge",
		Short: "Synthetic LEDES invoice generator",
	}

	cmd.AddCommand(commands.NewGenerateCmd(cli.logger, cli.reporter))
	cmd.AddCommand(commands.NewCatalogCmd(cli.reporter))

	return cmd
}
