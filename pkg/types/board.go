package types

import "errors"

// Heaven general that marks the Noble position on the plate.
const NobleGeneral = "貴"

// Course names of the four-course table, first to fourth.
var CourseNames = [4]string{"一課", "二課", "三課", "四課"}

// BoardRequest is the input of a Six Ren board engine.
type BoardRequest struct {
	SolarTerm  string `json:"solar_term" yaml:"solar_term"`
	LunarMonth string `json:"lunar_month" yaml:"lunar_month"`
	DayPillar  string `json:"day_pillar" yaml:"day_pillar"`
	HourPillar string `json:"hour_pillar" yaml:"hour_pillar"`
}

// Transmissions holds the initial, middle and final transmissions. Each is a
// short symbol sequence as emitted by the board engine.
type Transmissions struct {
	Initial []string `json:"initial" yaml:"initial"`
	Middle  []string `json:"middle" yaml:"middle"`
	Final   []string `json:"final" yaml:"final"`
}

// Board is the Six Ren board produced by an external engine. It is read-only
// input to this module.
type Board struct {
	Formation     []string            `json:"formation" yaml:"formation"`
	FourCourses   map[string][]string `json:"four_courses" yaml:"four_courses"` // keyed by CourseNames
	Transmissions Transmissions       `json:"three_transmissions" yaml:"three_transmissions"`
	DayHorse      string              `json:"day_horse" yaml:"day_horse"`
	Generals      map[string]string   `json:"generals" yaml:"generals"` // earth branch -> heaven general
	Plate         map[string]string   `json:"plate" yaml:"plate"`       // earth branch -> heaven plate branch
}

// CourseCell returns position pos of the named course, or "" when absent.
func (b *Board) CourseCell(course string, pos int) string {
	if b == nil {
		return ""
	}
	cells := b.FourCourses[course]
	if pos < 0 || pos >= len(cells) {
		return ""
	}
	return cells[pos]
}

// BoardBuilder builds a board for a cast. Implementations return an error
// wrapping ErrBoardConstruction when the engine rejects its input.
type BoardBuilder interface {
	Build(req BoardRequest) (Board, error)
}

// Board errors.
var (
	ErrBoardConstruction  = errors.New("board construction failed")
	ErrBoardNotConfigured = errors.New("no board source configured")
)
