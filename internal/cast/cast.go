// Package cast assembles a Six Ren reading: calendar conversion, board
// construction and mansion assignment, in that order.
package cast

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/liuren/internal/mansion"
	"github.com/mesh-intelligence/liuren/internal/observability"
	"github.com/mesh-intelligence/liuren/pkg/types"
)

// Stages reported by StageError.
const (
	StageCalendar = "calendar"
	StageBoard    = "board"
)

// ErrNoDate is returned when a Request carries neither or both dates.
var ErrNoDate = errors.New("request needs exactly one of a solar or a lunar date")

// StageError records which stage of a cast failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return e.Stage + ": " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// Request names the instant to cast, either as a solar or a lunar date.
type Request struct {
	Solar *types.SolarDateTime
	Lunar *types.LunarDateTime
}

// SolarRequest is shorthand for a solar-date Request.
func SolarRequest(t types.SolarDateTime) Request { return Request{Solar: &t} }

// LunarRequest is shorthand for a lunar-date Request.
func LunarRequest(t types.LunarDateTime) Request { return Request{Lunar: &t} }

// Reading is the full result of a cast. Board is nil when the board stage
// failed.
type Reading struct {
	RequestID    string             `json:"request_id" yaml:"request_id"`
	Calendar     types.CalendarInfo `json:"calendar" yaml:"calendar"`
	BoardRequest types.BoardRequest `json:"board_request" yaml:"board_request"`
	Board        *types.Board       `json:"board,omitempty" yaml:"board,omitempty"`
	Mansions     mansion.Assignment `json:"mansions" yaml:"mansions"`
}

// Caster runs casts against a calendar and a board source. A nil board
// source makes every board stage fail with ErrBoardNotConfigured.
type Caster struct {
	cal   types.Calendar
	board types.BoardBuilder
	log   zerolog.Logger
}

// New returns a Caster.
func New(cal types.Calendar, board types.BoardBuilder, log zerolog.Logger) *Caster {
	return &Caster{cal: cal, board: board, log: log}
}

// Cast produces a reading for req.
//
// A calendar failure returns a nil reading and a *StageError for the
// calendar stage. A board failure still returns the reading, without a
// board and with the sky mansion unset, together with a *StageError for the
// board stage.
func (c *Caster) Cast(req Request) (*Reading, error) {
	id := observability.NewRequestID()
	log := c.log.With().Str("request_id", id).Logger()

	info, err := c.resolve(req)
	if err != nil {
		log.Debug().Err(err).Msg("calendar stage failed")
		return nil, &StageError{Stage: StageCalendar, Err: err}
	}

	r := &Reading{
		RequestID:    id,
		Calendar:     info,
		BoardRequest: BoardRequestFor(info),
	}

	var stageErr error
	if b, err := c.build(r.BoardRequest); err != nil {
		log.Warn().Err(err).Msg("board stage failed")
		stageErr = &StageError{Stage: StageBoard, Err: err}
	} else {
		r.Board = &b
	}

	r.Mansions = mansion.Assign(mansionInput(info, r.Board))
	log.Info().
		Str("solar", info.SolarText).
		Str("pillars", info.Pillars.String()).
		Str("home", r.Mansions.Home.String()).
		Str("sky", r.Mansions.Sky.String()).
		Msg("cast complete")
	return r, stageErr
}

func (c *Caster) resolve(req Request) (types.CalendarInfo, error) {
	switch {
	case req.Solar != nil && req.Lunar == nil:
		return c.cal.FromSolar(*req.Solar)
	case req.Lunar != nil && req.Solar == nil:
		return c.cal.FromLunar(*req.Lunar)
	default:
		return types.CalendarInfo{}, ErrNoDate
	}
}

func (c *Caster) build(req types.BoardRequest) (types.Board, error) {
	if c.board == nil {
		return types.Board{}, types.ErrBoardNotConfigured
	}
	b, err := c.board.Build(req)
	if err != nil {
		if errors.Is(err, types.ErrBoardConstruction) || errors.Is(err, types.ErrBoardNotConfigured) {
			return types.Board{}, err
		}
		return types.Board{}, fmt.Errorf("%w: %w", types.ErrBoardConstruction, err)
	}
	return b, nil
}

// BoardRequestFor derives the board engine input from a calendar reading.
func BoardRequestFor(info types.CalendarInfo) types.BoardRequest {
	return types.BoardRequest{
		SolarTerm:  info.SolarTerm,
		LunarMonth: info.LunarMonth,
		DayPillar:  info.Pillars.Day,
		HourPillar: info.Pillars.Hour,
	}
}

func mansionInput(info types.CalendarInfo, board *types.Board) mansion.Input {
	return mansion.Input{
		Year:       info.Solar.Year,
		Month:      info.Solar.Month,
		Day:        info.Solar.Day,
		DayBranch:  branchOf(info.Pillars.Day),
		HourBranch: branchOf(info.Pillars.Hour),
		Minute:     info.Solar.Minute,
		Board:      board,
	}
}

func branchOf(label string) string {
	p, err := types.ParsePair(label)
	if err != nil {
		return ""
	}
	return p.Branch.String()
}
