package cli

import (
	"context"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
	now     func() time.Time
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version, now: time.Now}
}

// Options holds the parsed invocation.
type Options struct {
	// Path is the directory to scan.
	Path string
	// Debug enables debug output on stderr.
	Debug bool
	// Pause waits for Enter before exiting when stdin is a terminal.
	Pause bool
}

func bindFlags(flags *pflag.FlagSet, options *Options) {
	flags.BoolVar(&options.Debug, "debug", false, "Enable debug output")
	flags.BoolVar(&options.Pause, "pause", false, "Wait for Enter before exiting (interactive terminals only)")
	flags.SortFlags = false
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var options Options

	cmd := &cobra.Command{
		Use:   "sheetlist [flags] [path]",
		Short: "List the spreadsheet files of a directory into a new workbook",
		Long: heredoc.Doc(`
			sheetlist lists the spreadsheet files (.xlsx, .xls, .xlsm, .xlsb) found
			directly inside a directory and writes them to a new workbook in that
			same directory, named Excel名称リスト_<YYYYMMDD_HHMMSS>.xlsx.

			The workbook holds one row per file (name, size in KB, modification
			time, full path) and a summary sheet with the file count, the
			generation time and the scanned directory.

			Positional Arguments:
			  path    Directory to scan. Defaults to the current directory.
		`),
		Version:       c.version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			options.Path = "."
			if len(args) == 1 {
				options.Path = args[0]
			}

			return c.logic(cmd.Context(), options, streams{
				in:     cmd.InOrStdin(),
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
			})
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")
	bindFlags(cmd.Flags(), &options)

	return cmd
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().ExecuteContext(context.Background())
}
