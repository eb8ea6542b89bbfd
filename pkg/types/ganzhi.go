package types

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Stem is a heavenly stem ordinal, 0 (甲) through 9 (癸).
type Stem int

// Branch is an earthly branch ordinal, 0 (子) through 11 (亥).
type Branch int

// Cycle sizes.
const (
	StemCount   = 10
	BranchCount = 12
	PairCount   = 60
)

var stemSymbols = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var branchSymbols = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

// stemIndex and branchIndex map a symbol back to its ordinal. Built once in
// init and never written afterwards.
var (
	stemIndex   = make(map[string]Stem, StemCount)
	branchIndex = make(map[string]Branch, BranchCount)
)

func init() {
	for i, s := range stemSymbols {
		stemIndex[s] = Stem(i)
	}
	for i, s := range branchSymbols {
		branchIndex[s] = Branch(i)
	}
}

// Valid reports whether s is one of the ten stems.
func (s Stem) Valid() bool { return s >= 0 && s < StemCount }

func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemSymbols[s]
}

// Valid reports whether b is one of the twelve branches.
func (b Branch) Valid() bool { return b >= 0 && b < BranchCount }

func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchSymbols[b]
}

// Ordinal returns the 1-based position of the branch (子 = 1 ... 亥 = 12).
func (b Branch) Ordinal() int { return int(b) + 1 }

// ParseStem returns the stem for a one-character symbol.
func ParseStem(symbol string) (Stem, error) {
	s, ok := stemIndex[symbol]
	if !ok {
		return 0, fmt.Errorf("%w: unknown stem %q", ErrInvalidPair, symbol)
	}
	return s, nil
}

// ParseBranch returns the branch for a one-character symbol.
func ParseBranch(symbol string) (Branch, error) {
	b, ok := branchIndex[symbol]
	if !ok {
		return 0, fmt.Errorf("%w: unknown branch %q", ErrInvalidPair, symbol)
	}
	return b, nil
}

// BranchOrdinal returns the 1-based ordinal (1..12) of a branch symbol.
func BranchOrdinal(symbol string) (int, error) {
	b, err := ParseBranch(symbol)
	if err != nil {
		return 0, err
	}
	return b.Ordinal(), nil
}

// Stems returns the ten stems in cycle order.
func Stems() []Stem {
	out := make([]Stem, StemCount)
	for i := range out {
		out[i] = Stem(i)
	}
	return out
}

// Branches returns the twelve branches in cycle order.
func Branches() []Branch {
	out := make([]Branch, BranchCount)
	for i := range out {
		out[i] = Branch(i)
	}
	return out
}

// Pair is one of the sixty valid stem-branch combinations. Stem and branch
// always share parity; use NewPair or ParsePair to build one.
type Pair struct {
	Stem   Stem
	Branch Branch
}

// ValidPair reports whether the stem and branch ordinals are in range and
// share parity.
func ValidPair(stem, branch int) bool {
	if stem < 0 || stem >= StemCount || branch < 0 || branch >= BranchCount {
		return false
	}
	return stem%2 == branch%2
}

// NewPair returns the pair for the given stem and branch.
// Returns ErrInvalidPair when the combination is not one of the sixty.
func NewPair(stem Stem, branch Branch) (Pair, error) {
	if !ValidPair(int(stem), int(branch)) {
		return Pair{}, fmt.Errorf("%w: %s%s", ErrInvalidPair, stem, branch)
	}
	return Pair{Stem: stem, Branch: branch}, nil
}

// PairAt returns the pair at position i of the sixty-cycle (0 = 甲子).
// i is reduced modulo 60.
func PairAt(i int) Pair {
	i = ((i % PairCount) + PairCount) % PairCount
	return Pair{Stem: Stem(i % StemCount), Branch: Branch(i % BranchCount)}
}

// Pairs returns all sixty pairs in cycle order.
func Pairs() []Pair {
	out := make([]Pair, PairCount)
	for i := range out {
		out[i] = PairAt(i)
	}
	return out
}

// Index returns the position of p in the sixty-cycle (甲子 = 0 ... 癸亥 = 59).
func (p Pair) Index() int {
	s, b := int(p.Stem), int(p.Branch)
	// Solve i ≡ s (mod 10), i ≡ b (mod 12).
	return (6*s - 5*b + 60) % 60
}

// Label returns the two-character label, e.g. "甲子".
func (p Pair) Label() string {
	return p.Stem.String() + p.Branch.String()
}

func (p Pair) String() string { return p.Label() }

// Code returns the 1-based numeric code "stem/branch", e.g. "1/1" for 甲子.
func (p Pair) Code() string {
	return fmt.Sprintf("%d/%d", int(p.Stem)+1, int(p.Branch)+1)
}

// ParsePair parses a two-character label such as "丙寅".
// Returns an error wrapping ErrInvalidPair for unknown symbols, a wrong
// length, or a combination with mismatched parity.
func ParsePair(label string) (Pair, error) {
	label = strings.TrimSpace(label)
	if utf8.RuneCountInString(label) != 2 {
		return Pair{}, fmt.Errorf("%w: %q is not a two-character label", ErrInvalidPair, label)
	}
	r, size := utf8.DecodeRuneInString(label)
	stem, err := ParseStem(string(r))
	if err != nil {
		return Pair{}, err
	}
	branch, err := ParseBranch(label[size:])
	if err != nil {
		return Pair{}, err
	}
	return NewPair(stem, branch)
}

// ParsePairInput accepts either a two-character label or a numeric code
// "stem/branch" with 1-based ordinals (甲 = 1, 子 = 1). "3/5" is 丙辰.
func ParsePairInput(input string) (Pair, error) {
	input = strings.TrimSpace(input)
	sep := strings.IndexAny(input, "/,")
	if sep < 0 {
		return ParsePair(input)
	}
	stem, err := strconv.Atoi(strings.TrimSpace(input[:sep]))
	if err != nil {
		return Pair{}, fmt.Errorf("%w: bad stem code in %q", ErrInvalidPair, input)
	}
	branch, err := strconv.Atoi(strings.TrimSpace(input[sep+1:]))
	if err != nil {
		return Pair{}, fmt.Errorf("%w: bad branch code in %q", ErrInvalidPair, input)
	}
	if stem < 1 || stem > StemCount || branch < 1 || branch > BranchCount {
		return Pair{}, fmt.Errorf("%w: code %q out of range", ErrInvalidPair, input)
	}
	return NewPair(Stem(stem-1), Branch(branch-1))
}

// NormalizePairInput turns a label or numeric code into a two-character
// label without checking parity, so "1/2" yields "甲丑". Unknown symbols and
// out-of-range codes still fail with ErrInvalidPair.
func NormalizePairInput(input string) (string, error) {
	input = strings.TrimSpace(input)
	if sep := strings.IndexAny(input, "/,"); sep >= 0 {
		stem, err1 := strconv.Atoi(strings.TrimSpace(input[:sep]))
		branch, err2 := strconv.Atoi(strings.TrimSpace(input[sep+1:]))
		if err1 != nil || err2 != nil || stem < 1 || stem > StemCount || branch < 1 || branch > BranchCount {
			return "", fmt.Errorf("%w: bad code %q", ErrInvalidPair, input)
		}
		return Stem(stem-1).String() + Branch(branch-1).String(), nil
	}
	if utf8.RuneCountInString(input) != 2 {
		return "", fmt.Errorf("%w: %q is not a two-character label", ErrInvalidPair, input)
	}
	r, size := utf8.DecodeRuneInString(input)
	if _, err := ParseStem(string(r)); err != nil {
		return "", err
	}
	if _, err := ParseBranch(input[size:]); err != nil {
		return "", err
	}
	return input, nil
}
