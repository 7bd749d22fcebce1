package core

import "time"

// Weekday is the canonical weekday representation used everywhere in memory,
// in storage and on the wire: ISO-8601, 1=Monday .. 7=Sunday.
//
// The only place Go's 0=Sunday convention may appear is at the time package
// boundary; WeekdayFromTime and Weekday.Time are the designated conversion
// points. No other weekday convention is ever stored or transmitted.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Weekday) Valid() bool { return Monday <= d && d <= Sunday }

func (d Weekday) String() string {
	if !d.Valid() {
		return "Weekday(?)"
	}
	return weekdayNames[d]
}

// Time converts to the time package convention (0=Sunday .. 6=Saturday).
func (d Weekday) Time() time.Weekday {
	if d == Sunday {
		return time.Sunday
	}
	return time.Weekday(d)
}

// WeekdayFromTime converts from the time package convention.
func WeekdayFromTime(wd time.Weekday) Weekday {
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// WeekdayOf returns the canonical weekday of t.
func WeekdayOf(t time.Time) Weekday { return WeekdayFromTime(t.Weekday()) }

// ISOWeek returns the ISO year and week number of t.
func ISOWeek(t time.Time) (year, week int) { return t.ISOWeek() }

// QuarterOfWeek maps an ISO week number to its quarter (1..4).
// Weeks 1-13 -> Q1, 14-26 -> Q2, 27-39 -> Q3, 40+ -> Q4.
func QuarterOfWeek(week int) int {
	switch {
	case week <= 13:
		return 1
	case week <= 26:
		return 2
	case week <= 39:
		return 3
	default:
		return 4
	}
}

// QuarterWeeks returns the inclusive ISO week range covered by quarter q.
func QuarterWeeks(q int) (first, last int) {
	switch q {
	case 1:
		return 1, 13
	case 2:
		return 14, 26
	case 3:
		return 27, 39
	default:
		return 40, 53
	}
}
