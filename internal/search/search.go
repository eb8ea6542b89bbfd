// Package search finds the solar date-times whose four pillars match a
// target, scanning a year range through a types.Calendar.
package search

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/liuren/pkg/types"
)

// Reference date used to read a year's pillar. Mid-year avoids the new year
// and leap month boundaries.
const (
	ReferenceMonth = 6
	ReferenceDay   = 1
)

// SlotStep is the hour stride of the hour scan; each even hour stands for
// its two-hour branch slot.
const SlotStep = 2

// LateZiHour is probed after the even hours. From 23:00 the calendar already
// counts the next day's 子 hour, whose stem differs from the 00:00 one while
// the day pillar stays the same.
const LateZiHour = 23

// ProgressFunc receives the completed fraction of a search, in [0, 1].
type ProgressFunc func(fraction float64)

// YearRange is an inclusive range of solar years.
type YearRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of years in the range.
func (r YearRange) Len() int { return r.End - r.Start + 1 }

// Match is one date-time whose pillars equal the target.
type Match struct {
	Solar     types.SolarDateTime `json:"solar" yaml:"solar"`
	Lunar     types.LunarDateTime `json:"lunar" yaml:"lunar"`
	Pillars   types.PillarLabels  `json:"pillars" yaml:"pillars"`
	SolarText string              `json:"solar_text" yaml:"solar_text"`
	LunarText string              `json:"lunar_text" yaml:"lunar_text"`
}

// Options bounds the searchable years and sets the progress cadence.
type Options struct {
	MinYear       int
	MaxYear       int
	ProgressEvery int // years between progress callbacks
}

// DefaultOptions returns the full supported year range with the default
// progress cadence.
func DefaultOptions() Options {
	return Options{
		MinYear:       types.MinYear,
		MaxYear:       types.MaxYear,
		ProgressEvery: types.DefaultProgressEvery,
	}
}

// OptionsFromConfig derives Options from the search section of the config.
func OptionsFromConfig(cfg types.SearchConfig) Options {
	return Options{
		MinYear:       cfg.MinYear,
		MaxYear:       cfg.MaxYear,
		ProgressEvery: cfg.ProgressEvery,
	}
}

// Searcher runs reverse date searches. It holds no per-search state.
type Searcher struct {
	cal  types.Calendar
	opts Options
	log  zerolog.Logger
}

// New returns a Searcher over cal.
func New(cal types.Calendar, opts Options, log zerolog.Logger) *Searcher {
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = types.DefaultProgressEvery
	}
	return &Searcher{cal: cal, opts: opts, log: log}
}

// Search returns every date-time in years whose year, month, day and hour
// pillars equal target, ordered by year, month, day and hour. Even hours are
// probed, so each match stands for its two-hour slot, followed by 23:00 for
// the late 子 hour.
//
// A target that cannot occur (a label that is not one of the sixty pairs)
// yields an empty result without error. Calendar failures for individual
// candidates are skipped. The only error is ErrInvalidYearRange.
//
// progress may be nil. When set it is called every ProgressEvery years with a
// non-decreasing fraction and exactly once with 1 when the search completes.
func (s *Searcher) Search(target types.PillarLabels, years YearRange, progress ProgressFunc) ([]Match, error) {
	if err := s.checkRange(years); err != nil {
		return nil, err
	}

	rep := &reporter{fn: progress, total: years.Len(), every: s.opts.ProgressEvery}
	matches := []Match{}

	if _, err := types.ParsePillars(target); err != nil {
		s.log.Debug().Err(err).Str("target", target.String()).Msg("target cannot occur")
		rep.done()
		return matches, nil
	}

	// A sexagenary year straddles two solar years, so January and February
	// of year y may still carry the pillar of y-1.
	prev := s.yearPillar(years.Start - 1)
	scanned := 0
	for i, y := 0, years.Start; y <= years.End; i, y = i+1, y+1 {
		rep.step(i)
		cur := s.yearPillar(y)
		if cur == target.Year || prev == target.Year {
			matches = s.scanYear(y, target, matches)
			scanned++
		}
		prev = cur
	}
	rep.done()

	s.log.Info().
		Str("target", target.String()).
		Int("from", years.Start).
		Int("to", years.End).
		Int("years_scanned", scanned).
		Int("matches", len(matches)).
		Msg("reverse search finished")
	return matches, nil
}

func (s *Searcher) checkRange(years YearRange) error {
	if years.Start > years.End {
		return fmt.Errorf("%w: start %d after end %d", types.ErrInvalidYearRange, years.Start, years.End)
	}
	if years.Start < s.opts.MinYear || years.End > s.opts.MaxYear {
		return fmt.Errorf("%w: %d..%d outside %d..%d", types.ErrInvalidYearRange,
			years.Start, years.End, s.opts.MinYear, s.opts.MaxYear)
	}
	return nil
}

// yearPillar returns the year label at the reference date of y, or "" when
// the calendar cannot describe it.
func (s *Searcher) yearPillar(y int) string {
	info, err := s.cal.FromSolar(types.SolarDateTime{Year: y, Month: ReferenceMonth, Day: ReferenceDay})
	if err != nil {
		s.skip(err, y, ReferenceMonth, ReferenceDay, 0)
		return ""
	}
	return info.Pillars.Year
}

func (s *Searcher) scanYear(y int, target types.PillarLabels, out []Match) []Match {
	for month := 1; month <= 12; month++ {
		for day := 1; day <= 31; day++ {
			info, err := s.cal.FromSolar(types.SolarDateTime{Year: y, Month: month, Day: day})
			if err != nil {
				s.skip(err, y, month, day, 0)
				continue
			}
			p := info.Pillars
			if p.Day != target.Day || p.Month != target.Month || p.Year != target.Year {
				continue
			}
			out = s.scanDay(y, month, day, target, out)
		}
	}
	return out
}

func (s *Searcher) scanDay(y, month, day int, target types.PillarLabels, out []Match) []Match {
	for _, hour := range slotHours {
		info, err := s.cal.FromSolar(types.SolarDateTime{Year: y, Month: month, Day: day, Hour: hour})
		if err != nil {
			s.skip(err, y, month, day, hour)
			continue
		}
		if info.Pillars.Hour != target.Hour {
			continue
		}
		out = append(out, Match{
			Solar:     info.Solar,
			Lunar:     info.Lunar,
			Pillars:   info.Pillars,
			SolarText: info.SolarText,
			LunarText: info.LunarText,
		})
	}
	return out
}

var slotHours = func() []int {
	hours := make([]int, 0, 24/SlotStep+1)
	for h := 0; h < 24; h += SlotStep {
		hours = append(hours, h)
	}
	return append(hours, LateZiHour)
}()

// skip records a candidate the calendar rejected. Impossible dates are the
// normal case (day 31 of short months) and are not logged.
func (s *Searcher) skip(err error, y, month, day, hour int) {
	if errors.Is(err, types.ErrInvalidDate) {
		return
	}
	s.log.Debug().
		Err(err).
		Int("year", y).
		Int("month", month).
		Int("day", day).
		Int("hour", hour).
		Msg("candidate skipped")
}

// reporter batches progress callbacks.
type reporter struct {
	fn    ProgressFunc
	total int
	every int
	last  float64
}

func (r *reporter) step(i int) {
	if r.fn == nil || i%r.every != 0 {
		return
	}
	f := float64(i) / float64(r.total)
	if f < r.last {
		return
	}
	r.last = f
	r.fn(f)
}

func (r *reporter) done() {
	if r.fn == nil {
		return
	}
	r.last = 1
	r.fn(1)
}
