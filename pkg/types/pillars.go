package types

import "fmt"

// PillarLabels holds the year, month, day and hour stem-branch labels as
// produced by a Calendar. Labels are not validated.
type PillarLabels struct {
	Year  string `json:"year" yaml:"year"`
	Month string `json:"month" yaml:"month"`
	Day   string `json:"day" yaml:"day"`
	Hour  string `json:"hour" yaml:"hour"`
}

func (l PillarLabels) String() string {
	return fmt.Sprintf("%s年 %s月 %s日 %s時", l.Year, l.Month, l.Day, l.Hour)
}

// FourPillars is a parsed year/month/day/hour tuple of sexagenary pairs.
type FourPillars struct {
	Year  Pair
	Month Pair
	Day   Pair
	Hour  Pair
}

// Labels returns the two-character labels of the four pillars.
func (f FourPillars) Labels() PillarLabels {
	return PillarLabels{
		Year:  f.Year.Label(),
		Month: f.Month.Label(),
		Day:   f.Day.Label(),
		Hour:  f.Hour.Label(),
	}
}

func (f FourPillars) String() string { return f.Labels().String() }

// ParsePillars parses the four labels. The first invalid label is reported,
// wrapped with the pillar name, as an ErrInvalidPair error.
func ParsePillars(l PillarLabels) (FourPillars, error) {
	return parsePillars(l, ParsePair)
}

// ParsePillarInputs is ParsePillars accepting numeric codes as well as labels.
func ParsePillarInputs(l PillarLabels) (FourPillars, error) {
	return parsePillars(l, ParsePairInput)
}

func parsePillars(l PillarLabels, parse func(string) (Pair, error)) (FourPillars, error) {
	var f FourPillars
	fields := []struct {
		name  string
		label string
		dst   *Pair
	}{
		{"year", l.Year, &f.Year},
		{"month", l.Month, &f.Month},
		{"day", l.Day, &f.Day},
		{"hour", l.Hour, &f.Hour},
	}
	for _, fld := range fields {
		p, err := parse(fld.label)
		if err != nil {
			return FourPillars{}, fmt.Errorf("%s pillar: %w", fld.name, err)
		}
		*fld.dst = p
	}
	return f, nil
}
