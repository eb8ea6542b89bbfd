package types

import (
	"errors"
	"time"
)

// Config holds the settings of the liuren tool. It is decoded from
// config.yaml by the CLI and may be overridden by flags.
type Config struct {
	LogLevel string       `mapstructure:"log_level" yaml:"log_level"`
	Timezone string       `mapstructure:"timezone" yaml:"timezone"`
	Cache    CacheConfig  `mapstructure:"cache" yaml:"cache"`
	Board    BoardConfig  `mapstructure:"board" yaml:"board"`
	Search   SearchConfig `mapstructure:"search" yaml:"search"`
}

// CacheConfig selects the calendar memoization backend.
type CacheConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Dir     string `mapstructure:"dir" yaml:"dir,omitempty"`
}

// BoardConfig selects where boards come from.
type BoardConfig struct {
	Source  string        `mapstructure:"source" yaml:"source"`
	Command string        `mapstructure:"command" yaml:"command,omitempty"`
	Args    []string      `mapstructure:"args" yaml:"args,omitempty"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	File    string        `mapstructure:"file" yaml:"file,omitempty"`
}

// SearchConfig bounds the reverse date search.
type SearchConfig struct {
	MinYear       int `mapstructure:"min_year" yaml:"min_year"`
	MaxYear       int `mapstructure:"max_year" yaml:"max_year"`
	ProgressEvery int `mapstructure:"progress_every" yaml:"progress_every"`
}

// Supported cache backends.
const (
	CacheNone   = "none"
	CacheSQLite = "sqlite"
)

// Supported board sources.
const (
	BoardSourceCommand = "command"
	BoardSourceFile    = "file"
)

// Default values.
const (
	DefaultLogLevel      = "warn"
	DefaultTimezone      = "Asia/Shanghai"
	DefaultBoardTimeout  = 10 * time.Second
	DefaultProgressEvery = 20
)

// DefaultBoardArgs passes the four board inputs positionally.
var DefaultBoardArgs = []string{"{term}", "{month}", "{day}", "{hour}"}

// Config validation errors.
var (
	ErrCacheBackendUnknown  = errors.New("unknown cache backend")
	ErrBoardSourceUnknown   = errors.New("unknown board source")
	ErrYearBoundsInvalid    = errors.New("search year bounds are invalid")
	ErrProgressEveryInvalid = errors.New("progress cadence must be positive")
	ErrTimeoutInvalid       = errors.New("board timeout must be positive")
)

var knownCacheBackends = map[string]bool{
	CacheNone:   true,
	CacheSQLite: true,
}

var knownBoardSources = map[string]bool{
	BoardSourceCommand: true,
	BoardSourceFile:    true,
}

// DefaultConfig returns the configuration used when config.yaml is absent.
func DefaultConfig() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Timezone: DefaultTimezone,
		Cache:    CacheConfig{Backend: CacheNone},
		Board: BoardConfig{
			Source:  BoardSourceCommand,
			Args:    append([]string(nil), DefaultBoardArgs...),
			Timeout: DefaultBoardTimeout,
		},
		Search: SearchConfig{
			MinYear:       MinYear,
			MaxYear:       MaxYear,
			ProgressEvery: DefaultProgressEvery,
		},
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if !knownCacheBackends[c.Cache.Backend] {
		return ErrCacheBackendUnknown
	}
	if !knownBoardSources[c.Board.Source] {
		return ErrBoardSourceUnknown
	}
	if c.Board.Timeout <= 0 {
		return ErrTimeoutInvalid
	}
	s := c.Search
	if s.MinYear > s.MaxYear || s.MinYear < MinYear || s.MaxYear > MaxYear {
		return ErrYearBoundsInvalid
	}
	if s.ProgressEvery <= 0 {
		return ErrProgressEveryInvalid
	}
	return nil
}
