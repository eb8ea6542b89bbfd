package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/liuren/pkg/liuren"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the liuren version",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "liuren v%s\nmodule: %s\n", liuren.Version, liuren.ModulePath)
			if liuren.Revision != "" {
				fmt.Fprintf(out, "revision: %s\n", liuren.Revision)
			}
			return nil
		},
	}
}
