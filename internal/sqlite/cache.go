// Package sqlite memoizes calendar conversions in a SQLite database so that
// repeated casts and pillar lookups of the same instant skip the lunar
// computation.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/liuren/pkg/types"
)

// DBFile is the cache database file name inside the cache directory.
const DBFile = "calendar.db"

// keyVersion prefixes every key; bump it when CalendarInfo changes shape.
const keyVersion = "v1"

// FlushSize is the number of new entries held in memory before they are
// written to the database in one transaction.
const FlushSize = 256

const createCache = `CREATE TABLE IF NOT EXISTS calendar_cache (
    key TEXT PRIMARY KEY,
    info TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

// Cache is a types.Calendar that consults SQLite before the wrapped
// calendar. A detached Cache passes every call through. New entries are
// written in batches; Flush and Detach write whatever is pending.
type Cache struct {
	mu       sync.RWMutex
	attached bool
	db       *sql.DB
	next     types.Calendar
	log      zerolog.Logger

	pendingMu sync.Mutex
	pending   map[string]types.CalendarInfo

	statsMu sync.Mutex
	hits    int
	misses  int
}

// NewCache wraps next. The cache is not attached; call Attach to open the
// database.
func NewCache(next types.Calendar, log zerolog.Logger) *Cache {
	return &Cache{next: next, log: log}
}

// Attach opens or creates the cache database in dir.
// Returns ErrAlreadyAttached if already attached.
func (c *Cache) Attach(dir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attached {
		return types.ErrAlreadyAttached
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, DBFile))
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	if _, err := db.Exec(createCache); err != nil {
		db.Close()
		return fmt.Errorf("create cache schema: %w", err)
	}

	c.db = db
	c.attached = true
	c.pending = make(map[string]types.CalendarInfo)
	return nil
}

// Detach closes the database. Detach is idempotent.
func (c *Cache) Detach() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.attached {
		return nil
	}
	c.pendingMu.Lock()
	if err := c.flushLocked(); err != nil {
		c.log.Warn().Err(err).Msg("calendar cache flush failed")
	}
	c.pendingMu.Unlock()

	err := c.db.Close()
	c.db = nil
	c.attached = false
	return err
}

// Flush writes pending entries to the database in one transaction.
func (c *Cache) Flush() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.attached {
		return nil
	}
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	return c.flushLocked()
}

// Stats returns the hit and miss counts since creation.
func (c *Cache) Stats() (hits, misses int) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.hits, c.misses
}

// FromSolar implements types.Calendar.
func (c *Cache) FromSolar(t types.SolarDateTime) (types.CalendarInfo, error) {
	return c.lookup("solar:"+t.String(), func() (types.CalendarInfo, error) {
		return c.next.FromSolar(t)
	})
}

// FromLunar implements types.Calendar.
func (c *Cache) FromLunar(t types.LunarDateTime) (types.CalendarInfo, error) {
	return c.lookup("lunar:"+t.String(), func() (types.CalendarInfo, error) {
		return c.next.FromLunar(t)
	})
}

func (c *Cache) lookup(key string, compute func() (types.CalendarInfo, error)) (types.CalendarInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.attached {
		return compute()
	}
	key = keyVersion + ":" + key

	info, ok, err := c.get(key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("calendar cache read failed")
	}
	if ok {
		c.count(true)
		return info, nil
	}

	c.count(false)
	info, err = compute()
	if err != nil {
		// Errors are never cached; an invalid date stays invalid anyway.
		return info, err
	}
	if err := c.stage(key, info); err != nil {
		c.log.Warn().Err(err).Msg("calendar cache write failed")
	}
	return info, nil
}

func (c *Cache) get(key string) (types.CalendarInfo, bool, error) {
	c.pendingMu.Lock()
	queued, ok := c.pending[key]
	c.pendingMu.Unlock()
	if ok {
		return queued, true, nil
	}

	var raw string
	err := c.db.QueryRow(`SELECT info FROM calendar_cache WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return types.CalendarInfo{}, false, nil
	}
	if err != nil {
		return types.CalendarInfo{}, false, err
	}
	var info types.CalendarInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return types.CalendarInfo{}, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return info, true, nil
}

// stage queues an entry and flushes once FlushSize entries are pending.
func (c *Cache) stage(key string, info types.CalendarInfo) error {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()

	c.pending[key] = info
	if len(c.pending) < FlushSize {
		return nil
	}
	return c.flushLocked()
}

// flushLocked writes and clears the pending entries. The caller holds
// pendingMu and the database is open. Entries are dropped on failure.
func (c *Cache) flushLocked() error {
	if len(c.pending) == 0 {
		return nil
	}
	defer clear(c.pending)

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cache batch: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO calendar_cache (key, info, created_at) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare cache insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for key, info := range c.pending {
		raw, err := json.Marshal(info)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("encode %s: %w", key, err)
		}
		if _, err := stmt.Exec(key, string(raw), now); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cache batch: %w", err)
	}
	c.log.Debug().Int("entries", len(c.pending)).Msg("calendar cache flushed")
	return nil
}

func (c *Cache) count(hit bool) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	if hit {
		c.hits++
	} else {
		c.misses++
	}
}
