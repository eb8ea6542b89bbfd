package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/liuren/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration and prepare the calendar cache",
		Long: "Create the configuration directory with a default config.yaml if missing.\n" +
			"When cache.backend is sqlite, also create the calendar cache database.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Configuration is written by the root command before any subcommand runs.
			if a.cfg.Cache.Backend == types.CacheSQLite {
				if _, err := a.calendar(); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "liuren initialized successfully")
			return nil
		},
	}
}
