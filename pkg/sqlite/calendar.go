// Package sqlite exposes the SQLite-memoized calendar to library users while
// keeping the cache implementation internal.
package sqlite

import (
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/liuren/internal/calendar"
	"github.com/mesh-intelligence/liuren/internal/sqlite"
	"github.com/mesh-intelligence/liuren/pkg/types"
)

// CachedCalendar is a types.Calendar backed by a SQLite memo table. New
// entries are written in batches; Flush writes them early. Call Detach when
// done.
type CachedCalendar interface {
	types.Calendar
	Flush() error
	Detach() error
}

// OpenCalendar returns the lunar calendar memoized in dir/calendar.db.
//
// Example:
//
//	cal, err := sqlite.OpenCalendar(cacheDir, zerolog.Nop())
//	if err != nil {
//	    return err
//	}
//	defer cal.Detach()
//	info, err := cal.FromSolar(types.SolarDateTime{Year: 2000, Month: 1, Day: 1})
func OpenCalendar(dir string, log zerolog.Logger) (CachedCalendar, error) {
	c := sqlite.NewCache(calendar.New(), log)
	if err := c.Attach(dir); err != nil {
		return nil, err
	}
	return c, nil
}

// NewCalendar returns the lunar calendar without memoization.
func NewCalendar() types.Calendar {
	return calendar.New()
}
