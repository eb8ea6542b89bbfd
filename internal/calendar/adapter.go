// Package calendar implements types.Calendar on top of the lunar-go
// calendar library. The library panics on impossible dates; the adapter
// turns those panics into types.ErrInvalidDate so callers can skip a
// candidate without aborting.
package calendar

import (
	"fmt"

	lunar "github.com/6tail/lunar-go/calendar"

	"github.com/mesh-intelligence/liuren/pkg/types"
)

// Adapter converts solar and lunar date-times with lunar-go. The zero value
// is ready to use and safe for repeated calls.
type Adapter struct{}

// New returns a lunar-go backed Calendar.
func New() *Adapter {
	return &Adapter{}
}

// FromSolar describes a solar date-time.
// Returns ErrInvalidDate for impossible dates (day 31 in April, the ten days
// dropped in October 1582) and ErrYearOutOfRange outside the supported years.
func (a *Adapter) FromSolar(t types.SolarDateTime) (info types.CalendarInfo, err error) {
	if err := t.Validate(); err != nil {
		return types.CalendarInfo{}, err
	}
	defer recoverInvalid(&err, t)

	s := lunar.NewSolar(t.Year, t.Month, t.Day, t.Hour, t.Minute, 0)
	return describe(s.GetLunar()), nil
}

// FromLunar describes a lunar date-time. A leap month that does not exist in
// the given year is reported as ErrInvalidDate.
func (a *Adapter) FromLunar(t types.LunarDateTime) (info types.CalendarInfo, err error) {
	if err := t.Validate(); err != nil {
		return types.CalendarInfo{}, err
	}
	defer recoverInvalid(&err, t)

	month := t.Month
	if t.Leap {
		month = -month
	}
	l := lunar.NewLunar(t.Year, month, t.Day, t.Hour, t.Minute, 0)
	return describe(l), nil
}

// recoverInvalid must be deferred directly by the converting method.
func recoverInvalid(err *error, at fmt.Stringer) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s: %v", types.ErrInvalidDate, at, r)
	}
}

func describe(l *lunar.Lunar) types.CalendarInfo {
	s := l.GetSolar()
	month := l.GetMonth()
	leap := month < 0
	if leap {
		month = -month
	}

	info := types.CalendarInfo{
		Solar: types.SolarDateTime{
			Year:   s.GetYear(),
			Month:  s.GetMonth(),
			Day:    s.GetDay(),
			Hour:   s.GetHour(),
			Minute: s.GetMinute(),
		},
		Lunar: types.LunarDateTime{
			Year:   l.GetYear(),
			Month:  month,
			Day:    l.GetDay(),
			Leap:   leap,
			Hour:   l.GetHour(),
			Minute: l.GetMinute(),
		},
		Pillars: types.PillarLabels{
			Year:  l.GetYearInGanZhi(),
			Month: l.GetMonthInGanZhi(),
			Day:   l.GetDayInGanZhi(),
			Hour:  l.GetTimeInGanZhi(),
		},
		LunarMonth: l.GetMonthInChinese() + "月",
		DayVoid:    l.GetDayXunKong(),
		SolarText:  s.ToFullString(),
		LunarText:  l.String(),
	}
	if jq := l.GetPrevJieQi(); jq != nil {
		info.SolarTerm = jq.GetName()
	}
	return info
}
