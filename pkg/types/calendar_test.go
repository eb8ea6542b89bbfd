package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolarDateTimeValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      SolarDateTime
		wantErr error
	}{
		{"ordinary date", SolarDateTime{2024, 3, 15, 10, 30}, nil},
		{"lower bound year", SolarDateTime{MinYear, 1, 1, 0, 0}, nil},
		{"negative year", SolarDateTime{-100, 6, 1, 0, 0}, nil},
		{"year below range", SolarDateTime{MinYear - 1, 1, 1, 0, 0}, ErrYearOutOfRange},
		{"year above range", SolarDateTime{MaxYear + 1, 1, 1, 0, 0}, ErrYearOutOfRange},
		{"month 13", SolarDateTime{2024, 13, 1, 0, 0}, ErrInvalidDate},
		{"day 0", SolarDateTime{2024, 1, 0, 0, 0}, ErrInvalidDate},
		{"day 32", SolarDateTime{2024, 1, 32, 0, 0}, ErrInvalidDate},
		{"hour 24", SolarDateTime{2024, 1, 1, 24, 0}, ErrInvalidDate},
		{"minute 60", SolarDateTime{2024, 1, 1, 0, 60}, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLunarDateTimeValidate(t *testing.T) {
	assert.NoError(t, LunarDateTime{Year: 2023, Month: 2, Day: 30, Leap: true}.Validate())
	assert.ErrorIs(t, LunarDateTime{Year: 2023, Month: 2, Day: 31}.Validate(), ErrInvalidDate)
	assert.ErrorIs(t, LunarDateTime{Year: 3001, Month: 1, Day: 1}.Validate(), ErrYearOutOfRange)
}

func TestDateTimeStrings(t *testing.T) {
	assert.Equal(t, "1984-02-04 12:00", SolarDateTime{1984, 2, 4, 12, 0}.String())
	assert.Equal(t, "2023-L02-15 08:05", LunarDateTime{Year: 2023, Month: 2, Day: 15, Leap: true, Hour: 8, Minute: 5}.String())
}

func TestBoardCourseCell(t *testing.T) {
	b := &Board{FourCourses: map[string][]string{"一課": {"子", "丑"}}}
	assert.Equal(t, "丑", b.CourseCell("一課", 1))
	assert.Equal(t, "", b.CourseCell("一課", 2))
	assert.Equal(t, "", b.CourseCell("二課", 0))

	var nilBoard *Board
	assert.Equal(t, "", nilBoard.CourseCell("一課", 0))
}
