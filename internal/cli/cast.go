package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/liuren/internal/board"
	"github.com/mesh-intelligence/liuren/internal/cast"
	"github.com/mesh-intelligence/liuren/pkg/types"
)

func newCastCmd(a *app) *cobra.Command {
	var (
		dates     dateFlags
		boardFile string
	)
	cmd := &cobra.Command{
		Use:   "cast",
		Short: "Cast a Six Ren reading",
		Long: "Cast a Six Ren reading for a date (default: now). The board comes from the\n" +
			"configured engine or --board-file; without one the reading shows no board\n" +
			"and the sky mansion stays empty.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := a.calendar()
			if err != nil {
				return err
			}
			req, err := dates.request(a, cal)
			if err != nil {
				return err
			}

			src, err := board.FromConfig(a.cfg.Board, boardFile, a.log)
			if errors.Is(err, types.ErrBoardNotConfigured) {
				src = nil
			} else if err != nil {
				return userError(err)
			}

			reading, err := cast.New(cal, src, a.log).Cast(req)
			var stage *cast.StageError
			if errors.As(err, &stage) && stage.Stage == cast.StageBoard {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", err)
			} else if err != nil {
				return calendarError(err)
			}

			if err := a.emit(cmd.OutOrStdout(), reading, func(w io.Writer) error {
				return a.renderer.Reading(w, reading)
			}); err != nil {
				return sysError(err)
			}
			// The partial reading is printed either way; a failing engine
			// still fails the command.
			if stage != nil && errors.Is(stage, types.ErrBoardConstruction) {
				return sysError(stage)
			}
			return nil
		},
	}
	dates.register(cmd)
	cmd.Flags().StringVar(&boardFile, "board-file", "", "read the board from this YAML or JSON document")
	return cmd
}
