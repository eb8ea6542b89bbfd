package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/liuren/internal/cast"
	"github.com/mesh-intelligence/liuren/pkg/types"
)

// dateFlags are the date selection flags shared by cast and pillars.
// Fields left unset are taken from the current time in the configured zone.
type dateFlags struct {
	set    *pflag.FlagSet
	lunar  bool
	leap   bool
	year   int
	month  int
	day    int
	hour   int
	minute int
}

func (d *dateFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	d.set = f
	f.BoolVar(&d.lunar, "lunar", false, "read the date as a lunar date")
	f.BoolVar(&d.leap, "leap", false, "the lunar month is a leap month (with --lunar)")
	f.IntVar(&d.year, "year", 0, "year (default: now)")
	f.IntVar(&d.month, "month", 0, "month (default: now)")
	f.IntVar(&d.day, "day", 0, "day (default: now)")
	f.IntVar(&d.hour, "hour", 0, "hour 0-23 (default: now)")
	f.IntVar(&d.minute, "minute", 0, "minute 0-59 (default: now)")
}

// pick returns the flag value if the user gave it, else fallback.
func (d *dateFlags) pick(name string, v, fallback int) int {
	if d.set != nil && d.set.Changed(name) {
		return v
	}
	return fallback
}

// request builds the cast request. A lunar request fills unset fields from
// today's lunar date, which needs the calendar.
func (d *dateFlags) request(a *app, cal types.Calendar) (cast.Request, error) {
	if d.leap && !d.lunar {
		return cast.Request{}, userError(errors.New("--leap needs --lunar"))
	}
	loc, err := a.location()
	if err != nil {
		return cast.Request{}, err
	}
	now := a.now().In(loc)

	if !d.lunar {
		return cast.SolarRequest(types.SolarDateTime{
			Year:   d.pick("year", d.year, now.Year()),
			Month:  d.pick("month", d.month, int(now.Month())),
			Day:    d.pick("day", d.day, now.Day()),
			Hour:   d.pick("hour", d.hour, now.Hour()),
			Minute: d.pick("minute", d.minute, now.Minute()),
		}), nil
	}

	var today types.LunarDateTime
	if !d.set.Changed("year") || !d.set.Changed("month") || !d.set.Changed("day") {
		info, err := cal.FromSolar(types.SolarDateTime{
			Year: now.Year(), Month: int(now.Month()), Day: now.Day(),
		})
		if err != nil {
			return cast.Request{}, calendarError(err)
		}
		today = info.Lunar
	}
	return cast.LunarRequest(types.LunarDateTime{
		Year:   d.pick("year", d.year, today.Year),
		Month:  d.pick("month", d.month, today.Month),
		Day:    d.pick("day", d.day, today.Day),
		Leap:   d.leap,
		Hour:   d.pick("hour", d.hour, now.Hour()),
		Minute: d.pick("minute", d.minute, now.Minute()),
	}), nil
}
