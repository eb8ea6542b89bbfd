package board

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/liuren/pkg/types"
)

// maxStderr caps how much engine stderr is carried in an error.
const maxStderr = 512

// Command runs an external board engine and decodes the board it prints on
// stdout. Args may contain {term}, {month}, {day} and {hour}, which are
// replaced with the request fields.
type Command struct {
	Path    string
	Args    []string
	Timeout time.Duration
	log     zerolog.Logger
}

// NewCommand returns a board source running path with args.
func NewCommand(path string, args []string, timeout time.Duration, log zerolog.Logger) *Command {
	if timeout <= 0 {
		timeout = types.DefaultBoardTimeout
	}
	return &Command{Path: path, Args: args, Timeout: timeout, log: log}
}

// Build runs the engine once for req.
func (c *Command) Build(req types.BoardRequest) (types.Board, error) {
	if c.Path == "" {
		return types.Board{}, types.ErrBoardNotConfigured
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	args := expandArgs(c.Args, req)
	cmd := exec.CommandContext(ctx, c.Path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	c.log.Debug().
		Str("engine", c.Path).
		Strs("args", args).
		Dur("elapsed", time.Since(start)).
		Msg("board engine finished")

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return types.Board{}, fmt.Errorf("%w: %s timed out after %s", types.ErrBoardConstruction, c.Path, c.Timeout)
		}
		return types.Board{}, fmt.Errorf("%w: %s: %w: %s", types.ErrBoardConstruction, c.Path, err, tail(stderr.String()))
	}
	return Decode(stdout.Bytes())
}

func expandArgs(args []string, req types.BoardRequest) []string {
	r := strings.NewReplacer(
		"{term}", req.SolarTerm,
		"{month}", req.LunarMonth,
		"{day}", req.DayPillar,
		"{hour}", req.HourPillar,
	)
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = r.Replace(a)
	}
	return out
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		s = "..." + s[len(s)-maxStderr:]
	}
	return s
}
