package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairsRoundTrip(t *testing.T) {
	pairs := Pairs()
	require.Len(t, pairs, PairCount)

	seen := make(map[string]bool, PairCount)
	for i, p := range pairs {
		assert.True(t, ValidPair(int(p.Stem), int(p.Branch)), "pair %d", i)
		assert.Equal(t, i, p.Index(), "index of %s", p)

		got, err := ParsePair(p.Label())
		require.NoError(t, err)
		assert.Equal(t, p, got)

		assert.False(t, seen[p.Label()], "duplicate label %s", p)
		seen[p.Label()] = true
	}
	assert.Equal(t, "甲子", pairs[0].Label())
	assert.Equal(t, "癸亥", pairs[59].Label())
}

func TestParsePairRejectsParityMismatch(t *testing.T) {
	invalid := 0
	for s := 0; s < StemCount; s++ {
		for b := 0; b < BranchCount; b++ {
			if s%2 == b%2 {
				continue
			}
			invalid++
			label := stemSymbols[s] + branchSymbols[b]
			_, err := ParsePair(label)
			assert.ErrorIs(t, err, ErrInvalidPair, "label %s", label)

			_, err = NewPair(Stem(s), Branch(b))
			assert.ErrorIs(t, err, ErrInvalidPair)
		}
	}
	assert.Equal(t, 60, invalid)
}

func TestParsePairErrors(t *testing.T) {
	tests := []struct {
		name  string
		label string
	}{
		{"empty", ""},
		{"one character", "甲"},
		{"three characters", "甲子丑"},
		{"unknown stem", "子子"},
		{"unknown branch", "甲甲"},
		{"ascii", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePair(tt.label)
			assert.ErrorIs(t, err, ErrInvalidPair)
		})
	}
}

func TestValidPair(t *testing.T) {
	assert.True(t, ValidPair(0, 0))
	assert.True(t, ValidPair(9, 11))
	assert.False(t, ValidPair(0, 1))
	assert.False(t, ValidPair(-1, 1))
	assert.False(t, ValidPair(10, 0))
	assert.False(t, ValidPair(0, 12))
}

func TestPairAtWraps(t *testing.T) {
	assert.Equal(t, PairAt(0), PairAt(60))
	assert.Equal(t, PairAt(59), PairAt(-1))
	assert.Equal(t, "丙寅", PairAt(2).Label())
}

func TestBranchOrdinal(t *testing.T) {
	for i, sym := range branchSymbols {
		got, err := BranchOrdinal(sym)
		require.NoError(t, err)
		assert.Equal(t, i+1, got)
	}
	_, err := BranchOrdinal("甲")
	assert.ErrorIs(t, err, ErrInvalidPair)
}

func TestParsePairInput(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "丙寅", want: "丙寅"},
		{input: "3/5", want: "丙辰"},
		{input: " 1,1 ", want: "甲子"},
		{input: "10/12", want: "癸亥"},
		{input: "1/2", wantErr: true},
		{input: "0/1", wantErr: true},
		{input: "11/1", wantErr: true},
		{input: "x/1", wantErr: true},
		{input: "乙子", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePairInput(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPair)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Label())
			assert.Equal(t, got, mustParse(t, got.Code()))
		})
	}
}

func mustParse(t *testing.T, input string) Pair {
	t.Helper()
	p, err := ParsePairInput(input)
	require.NoError(t, err)
	return p
}

func TestParsePillars(t *testing.T) {
	f, err := ParsePillars(PillarLabels{Year: "甲子", Month: "丙寅", Day: "戊辰", Hour: "庚午"})
	require.NoError(t, err)
	assert.Equal(t, "戊辰", f.Day.Label())
	assert.Equal(t, PillarLabels{Year: "甲子", Month: "丙寅", Day: "戊辰", Hour: "庚午"}, f.Labels())

	_, err = ParsePillars(PillarLabels{Year: "甲子", Month: "丙卯", Day: "戊辰", Hour: "庚午"})
	assert.ErrorIs(t, err, ErrInvalidPair)
	assert.Contains(t, err.Error(), "month pillar")

	f, err = ParsePillarInputs(PillarLabels{Year: "1/1", Month: "3/3", Day: "5/5", Hour: "7/7"})
	require.NoError(t, err)
	assert.Equal(t, "甲子 丙寅 戊辰 庚午", f.Year.Label()+" "+f.Month.Label()+" "+f.Day.Label()+" "+f.Hour.Label())
}

func TestNormalizePairInput(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "丙寅", want: "丙寅"},
		{input: " 3/3 ", want: "丙寅"},
		{input: "1,2", want: "甲丑"},
		{input: "甲丑", want: "甲丑"},
		{input: "10/12", want: "癸亥"},
		{input: "11/1", wantErr: true},
		{input: "x/1", wantErr: true},
		{input: "甲", wantErr: true},
		{input: "子甲", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizePairInput(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPair)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
