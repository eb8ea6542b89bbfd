package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/liuren/internal/calendar"
	"github.com/mesh-intelligence/liuren/internal/mansion"
	"github.com/mesh-intelligence/liuren/internal/paths"
	"github.com/mesh-intelligence/liuren/internal/search"
	"github.com/mesh-intelligence/liuren/internal/sqlite"
	"github.com/mesh-intelligence/liuren/pkg/types"
)

// fixedNow is 2024-01-07 10:30 in Shanghai.
var fixedNow = time.Date(2024, 1, 7, 2, 30, 0, 0, time.UTC)

// testEnv isolates one CLI invocation sequence in temp directories.
type testEnv struct {
	t         *testing.T
	ConfigDir string
	CacheDir  string
}

type result struct {
	Stdout string
	Stderr string
	Err    error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, key := range []string{"LIUREN_LOG_LEVEL", "LIUREN_CACHE_BACKEND", "LIUREN_TIMEZONE", "LIUREN_BOARD_SOURCE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	dir := t.TempDir()
	return &testEnv{
		t:         t,
		ConfigDir: filepath.Join(dir, "config"),
		CacheDir:  filepath.Join(dir, "cache"),
	}
}

func (e *testEnv) run(args ...string) result {
	e.t.Helper()
	cmd := newRootCmd(func() time.Time { return fixedNow })
	var out, errb bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errb)
	cmd.SetArgs(append([]string{"--config-dir", e.ConfigDir, "--cache-dir", e.CacheDir}, args...))
	err := cmd.Execute()
	return result{Stdout: out.String(), Stderr: errb.String(), Err: err}
}

func (e *testEnv) mustRun(args ...string) result {
	e.t.Helper()
	r := e.run(args...)
	require.NoError(e.t, r.Err, "liuren %s\nstderr: %s", strings.Join(args, " "), r.Stderr)
	return r
}

func (e *testEnv) writeConfig(content string) {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(e.ConfigDir, 0o755))
	require.NoError(e.t, os.WriteFile(filepath.Join(e.ConfigDir, paths.ConfigFile), []byte(content), 0o644))
}

func TestVersion(t *testing.T) {
	r := newTestEnv(t).mustRun("version")
	assert.Contains(t, r.Stdout, "liuren v")
	assert.Contains(t, r.Stdout, "github.com/mesh-intelligence/liuren")
}

func TestInitWritesDefaultConfig(t *testing.T) {
	env := newTestEnv(t)
	r := env.mustRun("init")
	assert.Contains(t, r.Stdout, "initialized")

	data, err := os.ReadFile(filepath.Join(env.ConfigDir, paths.ConfigFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: none")

	_, err = os.Stat(filepath.Join(env.CacheDir, sqlite.DBFile))
	assert.True(t, os.IsNotExist(err), "cache must not be created when disabled")
}

func TestInitCreatesCacheWhenEnabled(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("LIUREN_CACHE_BACKEND", "sqlite")
	env.mustRun("init")

	_, err := os.Stat(filepath.Join(env.CacheDir, sqlite.DBFile))
	assert.NoError(t, err)
}

func TestInitKeepsExistingConfig(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("timezone: UTC\n")
	env.mustRun("init")

	data, err := os.ReadFile(filepath.Join(env.ConfigDir, paths.ConfigFile))
	require.NoError(t, err)
	assert.Equal(t, "timezone: UTC\n", string(data))
}

func TestPillarsJSON(t *testing.T) {
	env := newTestEnv(t)
	r := env.mustRun("pillars", "--year", "2000", "--month", "1", "--day", "1", "--hour", "0", "--json")

	var info types.CalendarInfo
	require.NoError(t, json.Unmarshal([]byte(r.Stdout), &info))
	assert.Equal(t, "戊午", info.Pillars.Day)
	assert.Equal(t, types.SolarDateTime{Year: 2000, Month: 1, Day: 1}, info.Solar)
}

func TestPillarsDefaultsToNow(t *testing.T) {
	env := newTestEnv(t)
	r := env.mustRun("pillars", "-o", "yaml")

	var info types.CalendarInfo
	require.NoError(t, yaml.Unmarshal([]byte(r.Stdout), &info))
	assert.Equal(t, types.SolarDateTime{Year: 2024, Month: 1, Day: 7, Hour: 10, Minute: 30}, info.Solar)
}

func TestPillarsLunarInput(t *testing.T) {
	env := newTestEnv(t)
	want, err := calendar.New().FromLunar(types.LunarDateTime{Year: 2023, Month: 2, Day: 15, Leap: true, Hour: 8})
	require.NoError(t, err)

	r := env.mustRun("pillars", "--lunar", "--leap", "--year", "2023", "--month", "2", "--day", "15", "--hour", "8", "--minute", "0", "--json")
	var info types.CalendarInfo
	require.NoError(t, json.Unmarshal([]byte(r.Stdout), &info))
	assert.Equal(t, want.Solar, info.Solar)
	assert.Equal(t, want.Pillars, info.Pillars)
}

func TestUserErrors(t *testing.T) {
	tests := []struct {
		name   string
		config string
		args   []string
	}{
		{name: "impossible date", args: []string{"pillars", "--year", "2023", "--month", "4", "--day", "31"}},
		{name: "year out of range", args: []string{"pillars", "--year", "3001", "--month", "1", "--day", "1"}},
		{name: "missing leap month", args: []string{"pillars", "--lunar", "--leap", "--year", "2024", "--month", "2", "--day", "1"}},
		{name: "leap without lunar", args: []string{"pillars", "--leap"}},
		{name: "unknown output format", args: []string{"pairs", "-o", "xml"}},
		{name: "unknown cache backend", config: "cache:\n  backend: redis\n", args: []string{"pairs"}},
		{name: "unknown log level", args: []string{"pairs", "--log-level", "loud"}},
		{name: "unknown timezone", config: "timezone: Mars/Olympus\n", args: []string{"pillars"}},
		{name: "bad pillar code", args: []string{"search", "11/1", "1/1", "1/1", "1/1"}},
		{name: "inverted years", args: []string{"search", "甲子", "丙寅", "戊辰", "戊午", "--from", "2000", "--to", "1990"}},
		{name: "wrong arg count", args: []string{"search", "甲子"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tt.config != "" {
				env.writeConfig(tt.config)
			}
			r := env.run(tt.args...)
			require.Error(t, r.Err)
			assert.Equal(t, exitUserError, ExitCode(r.Err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, ExitCode(nil))
	assert.Equal(t, exitSysError, ExitCode(sysError(os.ErrPermission)))
	assert.Equal(t, exitUserError, ExitCode(userError(os.ErrNotExist)))
	assert.Equal(t, exitUserError, ExitCode(os.ErrClosed))
}

const boardDoc = `
formation: [元首]
day_horse: 寅
generals:
  子: 貴
plate:
  子: 寅
`

func TestCastWithBoardFile(t *testing.T) {
	env := newTestEnv(t)
	boardPath := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(boardPath, []byte(boardDoc), 0o644))

	r := env.mustRun("cast", "--year", "1984", "--month", "2", "--day", "4", "--hour", "12", "--minute", "45",
		"--board-file", boardPath, "--json")

	var out struct {
		RequestID string                 `json:"request_id"`
		Board     *types.Board           `json:"board"`
		Mansions  map[string]interface{} `json:"mansions"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.Stdout), &out))
	assert.NotEmpty(t, out.RequestID)
	require.NotNil(t, out.Board)
	assert.Equal(t, "寅", out.Board.DayHorse)
	assert.Equal(t, "子", out.Mansions["noble"])
	assert.NotEqual(t, mansion.Placeholder, out.Mansions["sky"])
	assert.Empty(t, r.Stderr)
}

func TestCastWithoutBoardDegrades(t *testing.T) {
	env := newTestEnv(t)
	r := env.mustRun("cast", "--year", "1984", "--month", "2", "--day", "4", "--hour", "12")

	assert.Contains(t, r.Stderr, "warning: board:")
	assert.Contains(t, r.Stdout, "天禽：--")
	assert.Contains(t, r.Stdout, "地禽：")
	assert.NotContains(t, r.Stdout, "地禽：-- ")
}

func TestCastBrokenBoardIsSystemError(t *testing.T) {
	env := newTestEnv(t)
	boardPath := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(boardPath, []byte("{formation: ["), 0o644))

	r := env.run("cast", "--year", "1984", "--month", "2", "--day", "4", "--hour", "12", "--board-file", boardPath)

	require.Error(t, r.Err)
	assert.ErrorIs(t, r.Err, types.ErrBoardConstruction)
	assert.Equal(t, exitSysError, ExitCode(r.Err))
	assert.Contains(t, r.Stdout, "天禽：--")
}

func TestCastUsesCache(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("cache:\n  backend: sqlite\n")

	args := []string{"cast", "--year", "1990", "--month", "7", "--day", "15", "--hour", "9", "--json"}
	first := env.mustRun(args...)
	second := env.mustRun(args...)

	_, err := os.Stat(filepath.Join(env.CacheDir, sqlite.DBFile))
	require.NoError(t, err)

	var a, b struct {
		Calendar types.CalendarInfo `json:"calendar"`
	}
	require.NoError(t, json.Unmarshal([]byte(first.Stdout), &a))
	require.NoError(t, json.Unmarshal([]byte(second.Stdout), &b))
	assert.Equal(t, a.Calendar, b.Calendar)
}

func TestSearchFindsDate(t *testing.T) {
	if testing.Short() {
		t.Skip("scans real calendar years")
	}
	for _, at := range []types.SolarDateTime{
		{Year: 2000, Month: 2, Day: 10, Hour: 8},
		{Year: 2000, Month: 2, Day: 10, Hour: 23},
	} {
		t.Run(at.String(), func(t *testing.T) {
			env := newTestEnv(t)
			info, err := calendar.New().FromSolar(at)
			require.NoError(t, err)
			p := info.Pillars

			r := env.mustRun("search", p.Year, p.Month, p.Day, p.Hour, "--from", "1999", "--to", "2001", "--json")

			var out searchResult
			require.NoError(t, json.Unmarshal([]byte(r.Stdout), &out))
			assert.Equal(t, p, out.Target)
			assert.Equal(t, search.YearRange{Start: 1999, End: 2001}, out.Years)
			var found bool
			for _, m := range out.Matches {
				assert.Equal(t, p, m.Pillars)
				if m.Solar == at {
					found = true
				}
			}
			assert.True(t, found, "matches %+v", out.Matches)
		})
	}
}

func TestSearchImpossibleTargetIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	r := env.mustRun("search", "1/2", "3/3", "5/5", "7/7", "--from", "1984", "--to", "1985", "--no-progress")
	assert.Contains(t, r.Stdout, "未找到匹配日期")
	assert.Contains(t, r.Stdout, "甲丑")
}

func TestSearchDrawsProgress(t *testing.T) {
	env := newTestEnv(t)
	r := env.mustRun("search", "甲子", "丙寅", "戊辰", "戊午", "--from", "1990", "--to", "1991")
	assert.Contains(t, r.Stderr, "100%")
}

func TestPairs(t *testing.T) {
	env := newTestEnv(t)

	r := env.mustRun("pairs", "-o", "yaml")
	var rows []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(r.Stdout), &rows))
	require.Len(t, rows, types.PairCount)
	assert.Equal(t, "癸亥", rows[59]["label"])
	assert.Equal(t, "10/12", rows[59]["code"])

	r = env.mustRun("pairs")
	assert.Contains(t, r.Stdout, "甲子")
	assert.Contains(t, r.Stdout, "3/3")
}

func TestLogLevelFromEnv(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("LIUREN_LOG_LEVEL", "debug")
	r := env.mustRun("pairs")
	assert.Contains(t, r.Stderr, "configuration loaded")

	t.Setenv("LIUREN_LOG_LEVEL", "")
	r = env.mustRun("pairs")
	assert.NotContains(t, r.Stderr, "configuration loaded")
}
