package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/liuren/internal/render"
)

func newPairsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pairs",
		Short: "List the sixty stem-branch pairs with their numeric codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.emit(cmd.OutOrStdout(), render.PairRows(), func(w io.Writer) error {
				return a.renderer.Pairs(w)
			})
		},
	}
}
