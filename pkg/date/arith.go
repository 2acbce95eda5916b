package date

import (
	"fmt"
	"time"
)

// monthSpan is larger than any month shift staying within range.
const monthSpan = 9999 * 12

// AddDays returns d shifted by n days. A negative n moves back in time.
func AddDays(d CalendarDate, n int) (CalendarDate, error) {
	const op = "add days"

	if err := check(op, d); err != nil {
		return CalendarDate{}, err
	}
	if n > maxOffset || n < -maxOffset {
		return CalendarDate{}, outOfRange(op, d, fmt.Sprintf("shift of %d days", n))
	}

	offset := d.c().DaysSince(MinDate.c()) + n
	if offset < 0 || offset > maxOffset {
		return CalendarDate{}, outOfRange(op, d, fmt.Sprintf("shift of %d days", n))
	}

	return CalendarDate(MinDate.c().AddDays(offset)), nil
}

// SubtractDays returns d shifted back by n days.
func SubtractDays(d CalendarDate, n int) (CalendarDate, error) {
	return AddDays(d, -n)
}

// AddMonths returns d shifted by n months. A negative n moves back in time.
// When the day of d does not exist in the resulting month,
// the last day of that month is used: March 31 + 1 month is April 30.
func AddMonths(d CalendarDate, n int) (CalendarDate, error) {
	return addMonths("add months", d, n)
}

// SubtractMonths returns d shifted back by n months,
// clamping the day to the end of the resulting month:
// March 31 - 1 month is the last day of February.
// A negative n moves forward in time.
func SubtractMonths(d CalendarDate, n int) (CalendarDate, error) {
	return addMonths("subtract months", d, -n)
}

// AddYears returns d shifted by n years. February 29 becomes February 28
// when the resulting year is not a leap year.
func AddYears(d CalendarDate, n int) (CalendarDate, error) {
	if n > monthSpan/12 || n < -monthSpan/12 {
		return CalendarDate{}, outOfRange("add years", d, fmt.Sprintf("shift of %d years", n))
	}
	return addMonths("add years", d, n*12)
}

func addMonths(op string, d CalendarDate, n int) (CalendarDate, error) {
	if err := check(op, d); err != nil {
		return CalendarDate{}, err
	}
	if n > monthSpan || n < -monthSpan {
		return CalendarDate{}, outOfRange(op, d, fmt.Sprintf("shift of %d months", n))
	}

	months := d.Year*12 + int(d.Month) - 1 + n
	if months < MinDate.Year*12 || months > MaxDate.Year*12+11 {
		return CalendarDate{}, outOfRange(op, d, fmt.Sprintf("shift of %d months", n))
	}

	year, month := months/12, time.Month(months%12+1)
	day := d.Day
	if last := DaysIn(month, year); day > last {
		day = last
	}
	return Of(year, month, day), nil
}

// DaysBetween returns the amount of days from d1 to d2.
// The result is positive when d2 is after d1, and
// DaysBetween(a, b) == -DaysBetween(b, a).
func DaysBetween(d1, d2 CalendarDate) (int, error) {
	const op = "days between"

	if err := check(op, d1); err != nil {
		return 0, err
	}
	if err := check(op, d2); err != nil {
		return 0, err
	}
	return d2.c().DaysSince(d1.c()), nil
}
