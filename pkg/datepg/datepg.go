// Package datepg provides conversion between date.CalendarDate and
// the PostgreSQL date types of pgtype.
package datepg

import (
	"time"

	"github.com/jackc/pgtype"
	"github.com/muhlemmer/cleanutils/pkg/date"
)

// Date converts d to a pgtype.Date.
// The zero CalendarDate results in a NULL value.
func Date(d date.CalendarDate) pgtype.Date {
	if d.IsZero() {
		return pgtype.Date{Status: pgtype.Null}
	}
	return pgtype.Date{
		Time:   d.Time(time.UTC),
		Status: pgtype.Present,
	}
}

// FromDate converts a pgtype.Date to a CalendarDate.
// NULL results in the zero CalendarDate, which represents an absent date.
// Infinite dates and dates outside date.MinDate and date.MaxDate result in ErrRange.
func FromDate(pg pgtype.Date) (date.CalendarDate, error) {
	const op = "from pgtype"

	switch pg.Status {
	case pgtype.Null:
		return date.CalendarDate{}, nil
	case pgtype.Undefined:
		return date.CalendarDate{}, &date.Error{Op: op, Kind: date.ErrInvalidArgument, Reason: "undefined value"}
	}
	if pg.InfinityModifier != pgtype.None {
		return date.CalendarDate{}, &date.Error{Op: op, Kind: date.ErrRange, Value: pg.InfinityModifier.String(), Reason: "infinite date"}
	}

	d := date.DateOf(pg.Time.UTC())
	if d.Before(date.MinDate) || d.After(date.MaxDate) {
		return date.CalendarDate{}, &date.Error{Op: op, Kind: date.ErrRange, Value: d.String(), Reason: "date outside of representable range"}
	}
	return d, nil
}

// Daterange returns the inclusive range from start till end.
// Both dates must be present and start may not be after end.
func Daterange(start, end date.CalendarDate) (pgtype.Daterange, error) {
	const op = "daterange"

	days, err := date.DaysBetween(start, end)
	if err != nil {
		return pgtype.Daterange{}, err
	}
	if days < 0 {
		return pgtype.Daterange{}, &date.Error{Op: op, Kind: date.ErrInvalidArgument, Value: start.String() + ".." + end.String(), Reason: "start after end"}
	}

	return pgtype.Daterange{
		Lower:     Date(start),
		Upper:     Date(end),
		LowerType: pgtype.Inclusive,
		UpperType: pgtype.Inclusive,
		Status:    pgtype.Present,
	}, nil
}
