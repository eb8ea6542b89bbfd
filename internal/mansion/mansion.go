// Package mansion assigns the 28 lunar mansions (演禽) to a Six Ren reading.
//
// All tables in this package are built once at init and never written
// afterwards. Every operation degrades to an explicit placeholder instead of
// failing, so a reading always carries home, away and sky values.
package mansion

import "fmt"

// Mansion is a position in the master 28-mansion sequence (角 = 0 ... 軫 = 27).
type Mansion int

// Count is the number of mansions.
const Count = 28

// None is the placeholder for a mansion that could not be derived.
const None Mansion = -1

// Placeholder is the text rendered for None.
const Placeholder = "--"

var symbols = [Count]string{
	"角", "亢", "氐", "房", "心", "尾", "箕",
	"斗", "牛", "女", "虛", "危", "室", "壁",
	"奎", "婁", "胃", "昴", "畢", "觜", "參",
	"井", "鬼", "柳", "星", "張", "翼", "軫",
}

var symbolIndex = make(map[string]Mansion, Count)

func init() {
	for i, s := range symbols {
		symbolIndex[s] = Mansion(i)
	}
}

// Valid reports whether m names a real mansion.
func (m Mansion) Valid() bool { return m >= 0 && m < Count }

func (m Mansion) String() string {
	if !m.Valid() {
		return Placeholder
	}
	return symbols[m]
}

// MarshalText renders the mansion symbol, or the placeholder.
func (m Mansion) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Parse returns the mansion for a one-character symbol.
func Parse(symbol string) (Mansion, error) {
	m, ok := symbolIndex[symbol]
	if !ok {
		return None, fmt.Errorf("unknown mansion %q", symbol)
	}
	return m, nil
}

// All returns the master sequence in canonical order.
func All() []Mansion {
	out := make([]Mansion, Count)
	for i := range out {
		out[i] = Mansion(i)
	}
	return out
}

// Sequence is a cyclic rotation of the master sequence.
type Sequence [Count]Mansion

// Rotate returns the master sequence rotated so that origin comes first.
// Relative order is kept. An invalid origin yields the unrotated sequence.
func Rotate(origin Mansion) Sequence {
	var seq Sequence
	start := 0
	if origin.Valid() {
		start = int(origin)
	}
	for i := range seq {
		seq[i] = Mansion((start + i) % Count)
	}
	return seq
}

// At returns the mansion at position i, reduced modulo 28.
func (s Sequence) At(i int) Mansion {
	return s[((i%Count)+Count)%Count]
}
