package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/liuren/internal/cast"
	"github.com/mesh-intelligence/liuren/pkg/types"
)

func newPillarsCmd(a *app) *cobra.Command {
	var dates dateFlags
	cmd := &cobra.Command{
		Use:   "pillars",
		Short: "Show the four pillars of a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := a.calendar()
			if err != nil {
				return err
			}
			req, err := dates.request(a, cal)
			if err != nil {
				return err
			}
			info, err := resolve(cal, req)
			if err != nil {
				return calendarError(err)
			}
			return a.emit(cmd.OutOrStdout(), info, func(w io.Writer) error {
				return a.renderer.Pillars(w, info)
			})
		},
	}
	dates.register(cmd)
	return cmd
}

func resolve(cal types.Calendar, req cast.Request) (types.CalendarInfo, error) {
	if req.Lunar != nil {
		return cal.FromLunar(*req.Lunar)
	}
	return cal.FromSolar(*req.Solar)
}
