package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pastefeed/pkg/config"
)

func newListsCmd(ropts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show the configured path lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(ropts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg.ApplyEnv()

			out := cmd.OutOrStdout()
			for _, name := range cfg.ListNames() {
				marker := ""
				if name == cfg.List {
					marker = " (default)"
				}
				fmt.Fprintf(out, "%s%s:\n", name, marker)
				for _, path := range cfg.Lists[name] {
					fmt.Fprintf(out, "  %s\n", path)
				}
			}
			return nil
		},
	}
}
