package mansion

import (
	"fmt"

	lunar "github.com/6tail/lunar-go/calendar"
)

// Weekday is an index into the weekday table, 0 = 星期日 (Sunday) through
// 6 = 星期六. The week starts on Sunday; that ordering is what the triad
// tables below are keyed on.
type Weekday int

// Weekday values.
const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// DefaultWeekday is returned for dates that do not exist.
const DefaultWeekday = Monday

var weekdaySymbols = [7]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

func (w Weekday) String() string {
	if w < 0 || int(w) >= len(weekdaySymbols) {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdaySymbols[w]
}

// MarshalText renders the weekday symbol.
func (w Weekday) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// WeekdayOf returns the weekday of a civil date as the lunar calendar reads
// it: dates before 1582-10-15 are Julian. Impossible dates return
// DefaultWeekday.
func WeekdayOf(year, month, day int) (w Weekday) {
	defer func() {
		if r := recover(); r != nil {
			w = DefaultWeekday
		}
	}()
	return Weekday(lunar.NewSolarFromYmd(year, month, day).GetWeek())
}
