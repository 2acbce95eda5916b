package date

import (
	"errors"
	"sync"
	"testing"
	"time"
)

var testCalendar = NewCalendar(WithClock(Fixed(Of(2025, 10, 28))))

func TestCalendar_Today(t *testing.T) {
	clock := ClockFunc(func() time.Time {
		return time.Date(2025, time.October, 28, 23, 30, 0, 0, time.UTC)
	})
	tests := []struct {
		name string
		loc  *time.Location
		want CalendarDate
	}{
		{"utc", time.UTC, Of(2025, 10, 28)},
		{"east", time.FixedZone("UTC+2", 2*3600), Of(2025, 10, 29)},
		{"west", time.FixedZone("UTC-5", -5*3600), Of(2025, 10, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := NewCalendar(WithClock(clock), WithLocation(tt.loc))
			if got := cal.Today(); got != tt.want {
				t.Errorf("Today() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFixed(t *testing.T) {
	local := time.Local
	time.Local = time.FixedZone("UTC-5", -5*3600)
	t.Cleanup(func() { time.Local = local })

	today := Of(2025, 10, 28)
	tests := []struct {
		name string
		opts []Option
	}{
		{"local", nil},
		{"west", []Option{WithLocation(time.FixedZone("UTC-10", -10*3600))}},
		{"east", []Option{WithLocation(time.FixedZone("UTC+14", 14*3600))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := NewCalendar(append(tt.opts, WithClock(Fixed(today)))...)
			if got := cal.Today(); got != today {
				t.Errorf("Today() = %v, want %v", got, today)
			}
			if age, err := cal.Age(Of(2000, 10, 28)); err != nil || age != 25 {
				t.Errorf("Age() = %d, %v, want 25", age, err)
			}
			if after, err := cal.IsAfterToday(today); err != nil || after {
				t.Errorf("IsAfterToday() = %t, %v, want false", after, err)
			}
		})
	}

	if got, want := Fixed(today).Now(), time.Date(2025, time.October, 28, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("Now() = %v, want %v", got, want)
	}
}

func TestNewCalendar_nilOptions(t *testing.T) {
	cal := NewCalendar(WithClock(nil), WithLocation(nil))
	if cal.clock == nil || cal.loc != time.Local {
		t.Fatalf("NewCalendar() = %+v, want defaults", cal)
	}

	cal = NewCalendar(WithClock(Fixed(Of(2025, 10, 28))), WithClock(nil), WithLocation(nil))
	if got, want := cal.Today(), Of(2025, 10, 28); got != want {
		t.Errorf("Today() = %v, want %v", got, want)
	}
}

func TestCalendar_Age(t *testing.T) {
	tests := []struct {
		name    string
		birth   CalendarDate
		want    int
		wantErr error
	}{
		{"birthday tomorrow", Of(2000, 10, 29), 24, nil},
		{"birthday today", Of(2000, 10, 28), 25, nil},
		{"birthday passed", Of(2000, 1, 1), 25, nil},
		{"newborn", Of(2025, 10, 28), 0, nil},
		{"not yet a year", Of(2024, 10, 29), 0, nil},
		{"future", Of(2027, 1, 1), -1, nil},
		{"absent", CalendarDate{}, 0, ErrInvalidArgument},
		{"invalid", Of(2000, 2, 30), 0, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testCalendar.Age(tt.birth)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Age() err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Age() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAgeAt_leapDay(t *testing.T) {
	birth := Of(2000, 2, 29)
	tests := []struct {
		at   CalendarDate
		want int
	}{
		{Of(2001, 2, 28), 0},
		{Of(2001, 3, 1), 1},
		{Of(2004, 2, 28), 3},
		{Of(2004, 2, 29), 4},
	}
	for _, tt := range tests {
		got, err := AgeAt(birth, tt.at)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("AgeAt(%v, %v) = %d, want %d", birth, tt.at, got, tt.want)
		}
	}
}

func TestCalendar_IsAfterToday(t *testing.T) {
	tests := []struct {
		name    string
		d       CalendarDate
		want    bool
		wantErr error
	}{
		{"tomorrow", Of(2025, 10, 29), true, nil},
		{"today", Of(2025, 10, 28), false, nil},
		{"yesterday", Of(2025, 10, 27), false, nil},
		{"next year", Of(2026, 1, 1), true, nil},
		{"absent", CalendarDate{}, false, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testCalendar.IsAfterToday(tt.d)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("IsAfterToday() err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("IsAfterToday() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestSystemCalendar(t *testing.T) {
	want := DateOf(time.Now())
	// allow for midnight passing.
	if diff, err := DaysBetween(want, Today()); err != nil || diff < 0 || diff > 1 {
		t.Errorf("Today() differs %d days from %v: %v", diff, want, err)
	}

	if _, err := Age(CalendarDate{}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Age() err = %v, want %v", err, ErrInvalidArgument)
	}
	if _, err := IsAfterToday(CalendarDate{}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("IsAfterToday() err = %v, want %v", err, ErrInvalidArgument)
	}

	after, err := IsAfterToday(MaxDate)
	if err != nil {
		t.Fatal(err)
	}
	if !after {
		t.Error("IsAfterToday(MaxDate) = false")
	}
}

func TestCalendar_concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if age, err := testCalendar.Age(Of(2000, 10, 28)); err != nil || age != 25 {
				t.Errorf("Age() = %d, %v", age, err)
			}
		}()
	}
	wg.Wait()
}
