// Package cli implements the liuren command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/liuren/internal/calendar"
	"github.com/mesh-intelligence/liuren/internal/observability"
	"github.com/mesh-intelligence/liuren/internal/paths"
	"github.com/mesh-intelligence/liuren/internal/render"
	"github.com/mesh-intelligence/liuren/internal/sqlite"
	"github.com/mesh-intelligence/liuren/pkg/liuren"
	"github.com/mesh-intelligence/liuren/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code of a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }

func sysError(err error) error { return &exitError{code: exitSysError, err: err} }

// ExitCode maps an error returned by the root command to a process exit
// code. Errors not marked otherwise are user errors.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	cacheDir  string
	jsonMode  bool
	output    string
	logLevel  string
}

// app is the state shared by the subcommands of one invocation.
type app struct {
	flags    rootFlags
	cfg      types.Config
	log      zerolog.Logger
	format   render.Format
	renderer *render.Renderer
	cache    *sqlite.Cache
	now      func() time.Time
}

// NewRootCmd creates the top-level "liuren" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(time.Now)
}

func newRootCmd(now func() time.Time) *cobra.Command {
	a := &app{now: now, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "liuren",
		Short: "Six Ren casting, sexagenary pillars and reverse date search",
		Long: "liuren converts dates into four sexagenary pillars, casts Six Ren readings\n" +
			"with the bird-mansion method, and searches dates by their pillars.",
		Version: liuren.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/liuren)")
	pf.StringVar(&a.flags.cacheDir, "cache-dir", "", "calendar cache directory (default: $XDG_CACHE_HOME/liuren)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format (same as --output json)")
	pf.StringVarP(&a.flags.output, "output", "o", string(render.Text), "output format: text, json or yaml")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level (default: log_level from config.yaml, else warn)")

	root.AddCommand(newCastCmd(a))
	root.AddCommand(newPillarsCmd(a))
	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newPairsCmd(a))
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newVersionCmd())

	// PersistentPostRunE is skipped when RunE fails, so the cache is closed
	// around each RunE instead.
	for _, c := range root.Commands() {
		if c.RunE == nil {
			continue
		}
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) (err error) {
			defer func() {
				if cerr := a.teardown(); err == nil {
					err = cerr
				}
			}()
			return run(cmd, args)
		}
	}

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitCode(err))
	}
}

// setup loads configuration, builds the logger and opens the cache.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	cfg, err := decodeConfig(v)
	if err != nil {
		return userError(err)
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}
	a.cfg = cfg

	level, err := observability.ParseLevel(cfg.LogLevel)
	if err != nil {
		return userError(err)
	}
	a.log = observability.InitLogger(cmd.ErrOrStderr(), level)

	format := render.Format(a.flags.output)
	if a.flags.jsonMode {
		format = render.JSON
	}
	if a.format, err = render.ParseFormat(string(format)); err != nil {
		return userError(err)
	}
	a.renderer = render.New(render.DefaultTheme())

	a.log.Debug().Str("config_dir", configDir).Str("cache", cfg.Cache.Backend).Msg("configuration loaded")
	return nil
}

func (a *app) teardown() error {
	if a.cache == nil {
		return nil
	}
	err := a.cache.Detach()
	a.cache = nil
	if err != nil {
		return sysError(fmt.Errorf("close cache: %w", err))
	}
	return nil
}

// calendar returns the lunar calendar, memoized through SQLite when the
// cache is enabled.
func (a *app) calendar() (types.Calendar, error) {
	adapter := calendar.New()
	if a.cfg.Cache.Backend != types.CacheSQLite {
		return adapter, nil
	}
	if a.cache != nil {
		return a.cache, nil
	}
	dir, err := paths.ResolveCacheDir(a.flags.cacheDir, a.cfg.Cache.Dir)
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve cache dir: %w", err))
	}
	c := sqlite.NewCache(adapter, a.log)
	if err := c.Attach(dir); err != nil {
		return nil, sysError(fmt.Errorf("open cache: %w", err))
	}
	a.cache = c
	return c, nil
}

// location returns the configured time zone.
func (a *app) location() (*time.Location, error) {
	loc, err := time.LoadLocation(a.cfg.Timezone)
	if err != nil {
		return nil, userError(fmt.Errorf("timezone %q: %w", a.cfg.Timezone, err))
	}
	return loc, nil
}

// emit writes v in the selected structured format, or calls text for the
// text format.
func (a *app) emit(w io.Writer, v any, text func(io.Writer) error) error {
	if a.format == render.Text {
		return text(w)
	}
	return render.Structured(w, a.format, v)
}

// calendarError classifies a calendar failure for the exit code.
func calendarError(err error) error {
	if errors.Is(err, types.ErrInvalidDate) || errors.Is(err, types.ErrYearOutOfRange) {
		return userError(err)
	}
	return sysError(err)
}
