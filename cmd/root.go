package cmd

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"pastefeed/pkg/config"
	"pastefeed/pkg/logging"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	debug      bool
}

// NewRootCmd builds the command tree. Running the root command without a
// subcommand produces the feed.
func NewRootCmd(logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	ropts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "pastefeed",
		Short: "pastefeed minifies and concatenates project files for pasting",
		Long: `pastefeed reads a named list of project files, strips comments and whitespace
with a fixed set of regex rules, joins the results into a single text artifact
and reports how much of a downstream input budget it uses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetDebug(ropts.debug)
		},
	}

	rootCmd.PersistentFlags().StringVar(&ropts.configPath, "config", config.FileName, "Path to the manifest file")
	rootCmd.PersistentFlags().BoolVar(&ropts.debug, "debug", false, "Enable debug logging")

	addFeedFlags(rootCmd, ropts, logger)
	rootCmd.AddCommand(newListsCmd(ropts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute(logger *zap.Logger) error {
	return NewRootCmd(logger).Execute()
}

// DebugRequested reports whether args turn on --debug. It runs before the
// command tree exists so main can build the logger in development mode.
func DebugRequested(args []string) bool {
	fs := pflag.NewFlagSet("pastefeed", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	debug := fs.Bool("debug", false, "")
	_ = fs.Parse(args)
	return *debug
}
