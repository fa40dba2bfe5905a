package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pastefeed/pkg/config"
	"pastefeed/pkg/feed"
	"pastefeed/pkg/ignore"
)

type feedOptions struct {
	list    string
	root    string
	output  string
	budget  int
	write   bool
	perFile bool
}

func addFeedFlags(cmd *cobra.Command, ropts *rootOptions, logger *zap.Logger) {
	opts := &feedOptions{}

	cmd.Flags().StringVarP(&opts.list, "list", "l", "", "Name of the path list to feed")
	cmd.Flags().StringVar(&opts.root, "root", "", "Directory the listed paths are relative to")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "File the joined feed is written to")
	cmd.Flags().IntVar(&opts.budget, "budget", 0, "Downstream input budget in characters")
	cmd.Flags().BoolVar(&opts.write, "write", true, "Write the joined feed to the output file")
	cmd.Flags().BoolVar(&opts.perFile, "per-file", false, "Print each file separately instead of the joined feed")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, ropts.configPath, opts)
		if err != nil {
			return err
		}
		return runFeed(cmd, cfg, logger)
	}
}

// loadConfig reads the manifest, applies environment overrides and then any
// flag the user set explicitly.
// Without an explicit --config, --root also moves the manifest lookup into
// that directory.
func loadConfig(cmd *cobra.Command, path string, opts *feedOptions) (*config.Config, error) {
	flags := cmd.Flags()

	var cfg *config.Config
	var err error
	if flags.Changed("root") && !flags.Changed("config") {
		cfg, err = config.LoadConfigFromDir(opts.root)
	} else {
		cfg, err = config.LoadConfig(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv()

	if flags.Changed("list") {
		cfg.List = opts.list
	}
	if flags.Changed("root") {
		cfg.Root = opts.root
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("budget") {
		cfg.Budget = opts.budget
	}
	if flags.Changed("write") {
		cfg.WriteToFile = opts.write
	}
	if flags.Changed("per-file") {
		cfg.PerFile = opts.perFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runFeed(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger) error {
	paths, err := cfg.Select(cfg.List)
	if err != nil {
		return err
	}

	matcher, err := ignore.Load(logger, cfg.IgnoreFile())
	if err != nil {
		return fmt.Errorf("failed to load exclusion patterns: %w", err)
	}
	matcher.CompileLines(cfg.Exclude...)
	logger.Debug("Loaded exclusion patterns", zap.Int("patterns", matcher.Len()))
	if filtered := matcher.Filter(paths); len(filtered) != len(paths) {
		logger.Info("Excluded paths from list",
			zap.String("list", cfg.List),
			zap.Int("excluded", len(paths)-len(filtered)))
		paths = filtered
	}

	logger.Debug("Selected path list", zap.String("list", cfg.List), zap.Strings("paths", paths))

	reader := feed.NewReader(feed.NewMinifier(cfg.MinifyOptions()), logger)
	feeder := feed.NewFeeder(cfg.Arguments(), reader, cmd.OutOrStdout(), logger)

	_, err = feeder.Run(paths, feed.RunOptions{
		WriteToFile: cfg.WriteToFile,
		PerFile:     cfg.PerFile,
	})
	return err
}
