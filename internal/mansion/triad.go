package mansion

import "github.com/mesh-intelligence/liuren/pkg/types"

// Triad is one of the four three-harmony branch groups. Each owns seven
// origin mansions, one per weekday, Sunday first.
type Triad struct {
	Branches [3]types.Branch
	Origins  [7]Mansion
}

// DefaultOrigin is the origin mansion used when a day branch belongs to no
// triad.
const DefaultOrigin Mansion = 10 // 虛

// triadTable lists the triads as branch symbols and weekday mansions.
var triadTable = [4]struct {
	branches string
	origins  string
}{
	{"申子辰", "虛畢翼箕奎鬼氐"},
	{"巳酉丑", "房危觜軫斗婁柳"},
	{"寅午戌", "星心室參角牛胃"},
	{"亥卯未", "昴張尾壁井亢女"},
}

var (
	triads      [4]Triad
	branchTriad [types.BranchCount]int // branch -> index into triads
)

func init() {
	for i := range branchTriad {
		branchTriad[i] = -1
	}
	for ti, row := range triadTable {
		bi := 0
		for _, r := range row.branches {
			b, err := types.ParseBranch(string(r))
			if err != nil {
				panic(err)
			}
			if branchTriad[b] != -1 {
				panic("mansion: branch " + b.String() + " in two triads")
			}
			branchTriad[b] = ti
			triads[ti].Branches[bi] = b
			bi++
		}
		wi := 0
		for _, r := range row.origins {
			m, err := Parse(string(r))
			if err != nil {
				panic(err)
			}
			triads[ti].Origins[wi] = m
			wi++
		}
	}
}

// Triads returns the four triads.
func Triads() [4]Triad { return triads }

// TriadOf returns the triad containing branch b.
func TriadOf(b types.Branch) (Triad, bool) {
	if !b.Valid() || branchTriad[b] < 0 {
		return Triad{}, false
	}
	return triads[branchTriad[b]], true
}

// Origin returns the triad's origin mansion for weekday w, or None when w is
// out of range.
func (t Triad) Origin(w Weekday) Mansion {
	if w < 0 || int(w) >= len(t.Origins) {
		return None
	}
	return t.Origins[w]
}

// OriginFor returns the origin mansion for a day branch symbol and weekday.
// Unknown branches yield DefaultOrigin.
func OriginFor(dayBranch string, w Weekday) Mansion {
	b, err := types.ParseBranch(dayBranch)
	if err != nil {
		return DefaultOrigin
	}
	t, ok := TriadOf(b)
	if !ok {
		return DefaultOrigin
	}
	if m := t.Origin(w); m.Valid() {
		return m
	}
	return DefaultOrigin
}
