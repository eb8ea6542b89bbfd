package types

import (
	"errors"
	"fmt"
)

// Supported proleptic year range of the calendar conversion.
const (
	MinYear = -4000
	MaxYear = 3000
)

// SolarDateTime is a Gregorian (Julian before 1582-10-15) date and time
// to minute precision. Years may be zero or negative.
type SolarDateTime struct {
	Year   int `json:"year" yaml:"year"`
	Month  int `json:"month" yaml:"month"`
	Day    int `json:"day" yaml:"day"`
	Hour   int `json:"hour" yaml:"hour"`
	Minute int `json:"minute" yaml:"minute"`
}

// Validate checks field ranges. It does not check month lengths; that is
// left to the Calendar, which reports ErrInvalidDate.
func (t SolarDateTime) Validate() error {
	if t.Year < MinYear || t.Year > MaxYear {
		return fmt.Errorf("%w: %d", ErrYearOutOfRange, t.Year)
	}
	if t.Month < 1 || t.Month > 12 || t.Day < 1 || t.Day > 31 {
		return fmt.Errorf("%w: %s", ErrInvalidDate, t)
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: %s", ErrInvalidDate, t)
	}
	return nil
}

func (t SolarDateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", t.Year, t.Month, t.Day, t.Hour, t.Minute)
}

// LunarDateTime is a Chinese lunisolar date and time. Month is 1..12;
// Leap marks the intercalary month following Month.
type LunarDateTime struct {
	Year   int  `json:"year" yaml:"year"`
	Month  int  `json:"month" yaml:"month"`
	Day    int  `json:"day" yaml:"day"`
	Leap   bool `json:"leap" yaml:"leap"`
	Hour   int  `json:"hour" yaml:"hour"`
	Minute int  `json:"minute" yaml:"minute"`
}

// Validate checks field ranges.
func (t LunarDateTime) Validate() error {
	if t.Year < MinYear || t.Year > MaxYear {
		return fmt.Errorf("%w: %d", ErrYearOutOfRange, t.Year)
	}
	if t.Month < 1 || t.Month > 12 || t.Day < 1 || t.Day > 30 {
		return fmt.Errorf("%w: %s", ErrInvalidDate, t)
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: %s", ErrInvalidDate, t)
	}
	return nil
}

func (t LunarDateTime) String() string {
	leap := ""
	if t.Leap {
		leap = "L"
	}
	return fmt.Sprintf("%04d-%s%02d-%02d %02d:%02d", t.Year, leap, t.Month, t.Day, t.Hour, t.Minute)
}

// CalendarInfo is everything the Calendar reports about one instant.
type CalendarInfo struct {
	Solar      SolarDateTime `json:"solar" yaml:"solar"`
	Lunar      LunarDateTime `json:"lunar" yaml:"lunar"`
	Pillars    PillarLabels  `json:"pillars" yaml:"pillars"`
	SolarTerm  string        `json:"solar_term" yaml:"solar_term"`   // governing (previous) solar term
	LunarMonth string        `json:"lunar_month" yaml:"lunar_month"` // e.g. "正月", "闰四月"
	DayVoid    string        `json:"day_void" yaml:"day_void"`       // 旬空 branches of the day
	SolarText  string        `json:"solar_text" yaml:"solar_text"`
	LunarText  string        `json:"lunar_text" yaml:"lunar_text"`
}

// Calendar converts solar or lunar date-times into sexagenary labels and
// calendar metadata. Implementations must be side-effect free.
type Calendar interface {
	// FromSolar describes a solar date-time. Returns ErrInvalidDate for an
	// impossible date and ErrYearOutOfRange outside [MinYear, MaxYear].
	FromSolar(t SolarDateTime) (CalendarInfo, error)

	// FromLunar describes a lunar date-time, with the same error contract.
	FromLunar(t LunarDateTime) (CalendarInfo, error)
}

// Calendar errors.
var (
	ErrInvalidDate    = errors.New("invalid calendar date")
	ErrYearOutOfRange = errors.New("year out of supported range")
)
