package fees

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// WeekKey identifies one calendar week. Year is the week-numbering year,
// which differs from the calendar year around New Year.
type WeekKey struct {
	Year int
	Week int
}

func (k WeekKey) String() string {
	return fmt.Sprintf("%04d-W%02d", k.Year, k.Week)
}

// WeekNumbering maps a date to the week it belongs to.
type WeekNumbering interface {
	Week(d civil.Date) WeekKey
}

// ISOWeeks numbers weeks per ISO 8601: weeks start on Monday and week 1
// contains the first Thursday of the year.
type ISOWeeks struct{}

// Week implements WeekNumbering.
func (ISOWeeks) Week(d civil.Date) WeekKey {
	year, week := d.In(time.UTC).ISOWeek()
	return WeekKey{Year: year, Week: week}
}
