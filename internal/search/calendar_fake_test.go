package search

import (
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/liuren/pkg/types"
)

// arithmeticCalendar is a deterministic stand-in for the lunar calendar.
// Years change at February 4, months on the 4th of each month, days follow
// the Julian day number, hours follow the two-hour slots, and 23:xx
// already carries the next day's 子 hour as lunar-go does. It is internally
// consistent, which is all the search needs.
type arithmeticCalendar struct {
	calls int
	fail  map[types.SolarDateTime]bool // candidates that fail with a non-date error
}

var errBackend = errors.New("backend unavailable")

func (c *arithmeticCalendar) FromSolar(t types.SolarDateTime) (types.CalendarInfo, error) {
	c.calls++
	if err := t.Validate(); err != nil {
		return types.CalendarInfo{}, err
	}
	tm := time.Date(t.Year, time.Month(t.Month), t.Day, t.Hour, t.Minute, 0, 0, time.UTC)
	if tm.Day() != t.Day || int(tm.Month()) != t.Month {
		return types.CalendarInfo{}, fmt.Errorf("%w: %s", types.ErrInvalidDate, t)
	}
	if c.fail[t] {
		return types.CalendarInfo{}, errBackend
	}
	return types.CalendarInfo{
		Solar:     t,
		Pillars:   arithmeticPillars(t).Labels(),
		SolarText: t.String(),
	}, nil
}

func (c *arithmeticCalendar) FromLunar(types.LunarDateTime) (types.CalendarInfo, error) {
	return types.CalendarInfo{}, errors.New("not supported")
}

func arithmeticPillars(t types.SolarDateTime) types.FourPillars {
	sy := t.Year
	if t.Month < 2 || (t.Month == 2 && t.Day < 4) {
		sy--
	}
	year := types.PairAt(sy - 4)

	termMonth := t.Month
	if t.Day < 4 {
		termMonth--
	}
	monthBranch := ((termMonth % 12) + 12) % 12
	offset := (monthBranch - 2 + 12) % 12
	first := (int(year.Stem)%5)*2 + 2
	month := mustPair(types.Stem((first+offset)%10), types.Branch(monthBranch))

	day := types.PairAt(gregorianJDN(t.Year, t.Month, t.Day) + 49)

	hourBranch := ((t.Hour + 1) / 2) % 12
	hourDay := int(day.Stem)
	if t.Hour == 23 {
		hourDay++ // the late 子 hour takes the next day's stem
	}
	hour := mustPair(types.Stem((hourDay%5*2+hourBranch)%10), types.Branch(hourBranch))

	return types.FourPillars{Year: year, Month: month, Day: day, Hour: hour}
}

func mustPair(s types.Stem, b types.Branch) types.Pair {
	p, err := types.NewPair(s, b)
	if err != nil {
		panic(err)
	}
	return p
}

func gregorianJDN(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}
