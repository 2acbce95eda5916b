package date

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to a Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// Fixed returns a Clock which always reports d.
// A Calendar using it has d as today, regardless of its location.
// Now returns the start of d in UTC.
func Fixed(d CalendarDate) Clock {
	return fixedClock(d)
}

type fixedClock CalendarDate

func (f fixedClock) Now() time.Time {
	return CalendarDate(f).Time(time.UTC)
}

func (f fixedClock) today() CalendarDate {
	return CalendarDate(f)
}

// dateClock is a Clock which knows the date itself,
// so that no time zone conversion is applied.
type dateClock interface {
	Clock
	today() CalendarDate
}

// Calendar determines "today" using a Clock and a Location.
// A Calendar is immutable and safe for concurrent use.
type Calendar struct {
	clock Clock
	loc   *time.Location
}

// Option for NewCalendar.
type Option func(*Calendar)

// WithClock sets the clock a Calendar reads the current time from.
// The default is the system clock. A nil Clock is ignored.
func WithClock(c Clock) Option {
	return func(cal *Calendar) {
		if c != nil {
			cal.clock = c
		}
	}
}

// WithLocation sets the location in which the current time is
// converted to a date. The default is time.Local. A nil Location is ignored.
func WithLocation(loc *time.Location) Option {
	return func(cal *Calendar) {
		if loc != nil {
			cal.loc = loc
		}
	}
}

// NewCalendar returns a Calendar configured by opts.
func NewCalendar(opts ...Option) *Calendar {
	cal := &Calendar{
		clock: ClockFunc(time.Now),
		loc:   time.Local,
	}
	for _, o := range opts {
		o(cal)
	}
	return cal
}

// Today returns the current date.
func (cal *Calendar) Today() CalendarDate {
	if c, ok := cal.clock.(dateClock); ok {
		return c.today()
	}
	return DateOf(cal.clock.Now().In(cal.loc))
}

// Age returns the amount of full years between birth and today.
// The result is negative when birth is in the future.
// An absent birth date results in an InvalidArgument error.
func (cal *Calendar) Age(birth CalendarDate) (int, error) {
	return AgeAt(birth, cal.Today())
}

// IsAfterToday reports whether d is strictly after today.
// An absent date results in an InvalidArgument error.
func (cal *Calendar) IsAfterToday(d CalendarDate) (bool, error) {
	if err := check("is after today", d); err != nil {
		return false, err
	}
	return d.After(cal.Today()), nil
}

// AgeAt returns the amount of full years between birth and at.
// A year is only counted once its anniversary is reached:
// someone born on February 29 turns one on March 1 of a non-leap year.
func AgeAt(birth, at CalendarDate) (int, error) {
	const op = "age"

	if err := check(op, birth); err != nil {
		return 0, err
	}
	if err := check(op, at); err != nil {
		return 0, err
	}

	months := (at.Year*12 + int(at.Month)) - (birth.Year*12 + int(birth.Month))
	days := at.Day - birth.Day
	switch {
	case months > 0 && days < 0:
		months--
	case months < 0 && days > 0:
		months++
	}

	return months / 12, nil
}

var system = NewCalendar()

// Today returns the current date of the system clock, in the local time zone.
func Today() CalendarDate {
	return system.Today()
}

// Age is like Calendar.Age, using the system clock and local time zone.
func Age(birth CalendarDate) (int, error) {
	return system.Age(birth)
}

// IsAfterToday is like Calendar.IsAfterToday, using the system clock and local time zone.
func IsAfterToday(d CalendarDate) (bool, error) {
	return system.IsAfterToday(d)
}
