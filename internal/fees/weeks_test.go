package fees

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestISOWeeks_Week(t *testing.T) {
	tests := []struct {
		date string
		want WeekKey
	}{
		{"2016-01-04", WeekKey{2016, 1}}, // Monday
		{"2016-01-10", WeekKey{2016, 1}}, // Sunday, same week
		{"2016-01-11", WeekKey{2016, 2}}, // next Monday
		{"2016-01-03", WeekKey{2015, 53}},
		{"2018-12-31", WeekKey{2019, 1}},
		{"2016-02-15", WeekKey{2016, 7}},
	}

	weeks := ISOWeeks{}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, weeks.Week(date(t, tt.date)))
		})
	}
}

func TestWeekKey_String(t *testing.T) {
	assert.Equal(t, "2016-W01", WeekKey{Year: 2016, Week: 1}.String())
	assert.Equal(t, "2015-W53", WeekKey{Year: 2015, Week: 53}.String())
}
