package mansion

import "github.com/mesh-intelligence/liuren/pkg/types"

// Input is what the assignment reads from a cast.
type Input struct {
	Year, Month, Day int    // solar date
	DayBranch        string // branch of the day pillar
	HourBranch       string // branch of the hour pillar
	Minute           int
	Board            *types.Board // may be nil when no board was built
}

// Assignment is the result of Assign. Home, Away and Sky are None when they
// could not be derived.
type Assignment struct {
	Weekday   Weekday      `json:"weekday" yaml:"weekday"`
	Origin    Mansion      `json:"origin" yaml:"origin"`
	Home      Mansion      `json:"home" yaml:"home"`
	Away      Mansion      `json:"away" yaml:"away"`
	Sky       Mansion      `json:"sky" yaml:"sky"`
	Noble     string       `json:"noble,omitempty" yaml:"noble,omitempty"` // branch holding the Noble general
	SkyLookup LookupStatus `json:"-" yaml:"-"`
}

// Assign computes the home, away and sky mansions. It never fails.
//
//	home = rotated[(hour + (minute > 30 ? 1 : 0)) mod 28]
//	away = rotated[hour mod 28]
//	sky  = rotated[(noble + plate[noble]) mod 28]
//
// where rotated starts at the origin mansion of the day's triad and weekday,
// and hour, noble and plate[noble] are 1-based branch ordinals.
func Assign(in Input) Assignment {
	a := Assignment{
		Weekday: WeekdayOf(in.Year, in.Month, in.Day),
		Home:    None,
		Away:    None,
		Sky:     None,
	}
	a.Origin = OriginFor(in.DayBranch, a.Weekday)
	rotated := Rotate(a.Origin)

	if hour, err := types.BranchOrdinal(in.HourBranch); err == nil {
		late := 0
		if in.Minute > 30 {
			late = 1
		}
		a.Home = rotated.At(hour + late)
		a.Away = rotated.At(hour)
	}

	a.Sky, a.Noble, a.SkyLookup = sky(rotated, in.Board)
	return a
}

func sky(rotated Sequence, board *types.Board) (Mansion, string, LookupStatus) {
	if board == nil {
		return None, "", LookupNone
	}
	noble, status := InverseLookup(board.Generals, types.NobleGeneral)
	if status != LookupFound {
		return None, "", status
	}
	nobleOrd, err := types.BranchOrdinal(noble)
	if err != nil {
		return None, noble, status
	}
	stationedOrd, err := types.BranchOrdinal(board.Plate[noble])
	if err != nil {
		return None, noble, status
	}
	return rotated.At(nobleOrd + stationedOrd), noble, status
}
