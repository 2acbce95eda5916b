// Package datepb provides conversion between date.CalendarDate and googleapis/types/date.Date.
package datepb

import (
	"fmt"
	"time"

	"github.com/muhlemmer/cleanutils/pkg/date"
	gdate "google.golang.org/genproto/googleapis/type/date"
)

func extractYMD(pb *gdate.Date) (year int, month time.Month, day int) {
	y := pb.GetYear()
	m := pb.GetMonth()
	d := pb.GetDay()

	return int(y), time.Month(m), int(d)
}

func invalid(op string, pb *gdate.Date, reason string) error {
	return &date.Error{
		Op:     op,
		Kind:   date.ErrInvalidArgument,
		Value:  fmt.Sprintf("%04d-%02d-%02d", pb.GetYear(), pb.GetMonth(), pb.GetDay()),
		Reason: reason,
	}
}

func checked(op string, pb *gdate.Date, d date.CalendarDate) (date.CalendarDate, error) {
	if !d.IsValid() {
		return date.CalendarDate{}, invalid(op, pb, "not a calendar date")
	}
	if d.Before(date.MinDate) || d.After(date.MaxDate) {
		return date.CalendarDate{}, &date.Error{Op: op, Kind: date.ErrRange, Value: d.String(), Reason: "date outside of representable range"}
	}
	return d, nil
}

// FromProto converts a full googleapis/type/date.Date to a CalendarDate.
// A nil date, or a date with a zero year, month or day results in an
// InvalidArgument error. Use Interval for partial dates.
func FromProto(pb *gdate.Date) (date.CalendarDate, error) {
	const op = "from proto"

	if pb == nil {
		return date.CalendarDate{}, &date.Error{Op: op, Kind: date.ErrInvalidArgument, Reason: "date is absent"}
	}
	year, month, day := extractYMD(pb)
	if year == 0 || month == 0 || day == 0 {
		return date.CalendarDate{}, invalid(op, pb, "partial date")
	}

	return checked(op, pb, date.Of(year, month, day))
}

// Interval returns the first and last day of the period a date represents.
// A date can represent:
//   - a full year when month and day are empty.
//     The period is 1st of January till 31st of December.
//   - a full month when day is empty.
//     The period is the 1st till the last day of the month.
//   - an exact date with year, month and day.
//     start and end are equal.
//
// Dates without a year, such as anniversaries, are not supported.
func Interval(pb *gdate.Date) (start, end date.CalendarDate, err error) {
	const op = "interval"

	if pb == nil {
		return start, end, &date.Error{Op: op, Kind: date.ErrInvalidArgument, Reason: "date is absent"}
	}
	year, month, day := extractYMD(pb)
	if year == 0 {
		return start, end, invalid(op, pb, "date without year")
	}

	switch {
	case month == 0 && day == 0:
		start, end = date.Of(year, time.January, 1), date.Of(year, time.December, 31)
	case month == 0:
		return start, end, invalid(op, pb, "day without month")
	case day == 0:
		if month < time.January || month > time.December {
			return start, end, invalid(op, pb, "not a calendar date")
		}
		start, end = date.Of(year, month, 1), date.Of(year, month, date.DaysIn(month, year))
	default:
		start = date.Of(year, month, day)
		end = start
	}

	if start, err = checked(op, pb, start); err != nil {
		return date.CalendarDate{}, date.CalendarDate{}, err
	}
	if end, err = checked(op, pb, end); err != nil {
		return date.CalendarDate{}, date.CalendarDate{}, err
	}
	return start, end, nil
}

// ToProto converts a CalendarDate to a googleapis/type/date.Date.
// The zero CalendarDate results in nil.
func ToProto(d date.CalendarDate) *gdate.Date {
	if d.IsZero() {
		return nil
	}
	return &gdate.Date{
		Year:  int32(d.Year),
		Month: int32(d.Month),
		Day:   int32(d.Day),
	}
}

// Today returns today's date according to cal.
func Today(cal *date.Calendar) *gdate.Date {
	return ToProto(cal.Today())
}
