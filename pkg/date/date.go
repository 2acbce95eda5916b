// Package date provides helpers for parsing, formatting and calendar arithmetic
// over CalendarDate values.
//
// All functions are pure and safe for concurrent use.
// The only functions depending on the current date are the ones
// taking it from a Calendar: Today, Age and IsAfterToday.
package date

import (
	"time"

	"cloud.google.com/go/civil"
)

// CalendarDate is a year, month and day in the proleptic Gregorian calendar.
// The zero value represents an absent date and is rejected by every operation
// expecting a date argument.
type CalendarDate civil.Date

// Representable range. Arithmetic producing a date outside of it fails with ErrRange.
var (
	MinDate = CalendarDate{Year: 1, Month: time.January, Day: 1}
	MaxDate = CalendarDate{Year: 9999, Month: time.December, Day: 31}
)

// maxOffset is the amount of days between MinDate and MaxDate.
var maxOffset = MaxDate.c().DaysSince(MinDate.c())

// Of returns the CalendarDate for year, month and day.
// The values are not normalized; use IsValid to check the result.
func Of(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{Year: year, Month: month, Day: day}
}

// DateOf returns the CalendarDate in which t occurs, in t's location.
func DateOf(t time.Time) CalendarDate {
	return CalendarDate(civil.DateOf(t))
}

func (d CalendarDate) c() civil.Date {
	return civil.Date(d)
}

// String returns the date in yyyy-MM-dd form.
func (d CalendarDate) String() string {
	return d.c().String()
}

// IsZero reports whether d is the zero value, meaning absent.
func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

// IsValid reports whether d is an existing calendar date.
func (d CalendarDate) IsValid() bool {
	return d.c().IsValid()
}

// inRange reports whether d lies within MinDate and MaxDate.
func (d CalendarDate) inRange() bool {
	return !d.Before(MinDate) && !d.After(MaxDate)
}

func (d CalendarDate) Before(d2 CalendarDate) bool {
	return d.c().Before(d2.c())
}

func (d CalendarDate) After(d2 CalendarDate) bool {
	return d.c().After(d2.c())
}

func (d CalendarDate) Equal(d2 CalendarDate) bool {
	return d == d2
}

// Compare returns -1 if d is before d2, +1 if d is after d2 and 0 if they are equal.
func (d CalendarDate) Compare(d2 CalendarDate) int {
	switch {
	case d.Before(d2):
		return -1
	case d.After(d2):
		return 1
	}
	return 0
}

// Time returns the start of d (00:00) in loc.
func (d CalendarDate) Time(loc *time.Location) time.Time {
	return d.c().In(loc)
}

// Weekday of d.
func (d CalendarDate) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// YearDay returns the day of the year of d, in the range [1,365] for non-leap years,
// and [1,366] in leap years.
func (d CalendarDate) YearDay() int {
	return d.Time(time.UTC).YearDay()
}

func (d CalendarDate) MarshalText() ([]byte, error) {
	return d.c().MarshalText()
}

func (d *CalendarDate) UnmarshalText(data []byte) error {
	return (*civil.Date)(d).UnmarshalText(data)
}

// IsLeapYear reports whether year has 366 days.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysInMonth = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysIn returns the number of days in month of year.
// It returns 0 for a month outside January to December.
func DaysIn(month time.Month, year int) int {
	if month < time.January || month > time.December {
		return 0
	}
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// check returns an error if d can not be used as an operation argument.
func check(op string, d CalendarDate) error {
	switch {
	case d.IsZero():
		return invalidArgument(op, "date is absent")
	case !d.IsValid():
		return &Error{Op: op, Kind: ErrInvalidArgument, Value: d.String(), Reason: "not a calendar date"}
	case !d.inRange():
		return outOfRange(op, d, "date outside of representable range")
	}
	return nil
}
