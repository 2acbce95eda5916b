package date

import (
	"golang.org/x/text/language"

	"github.com/muhlemmer/cleanutils/internal/locale"
)

// ISOPattern is the pattern of CalendarDate.String.
const ISOPattern = "yyyy-MM-dd"

// names returns the name table for tag, as a FormatError for op on failure.
func names(op string, tag language.Tag) (*locale.Names, error) {
	n, err := locale.Lookup(tag)
	if err != nil {
		return nil, &Error{Op: op, Kind: ErrFormat, Value: tag.String(), Reason: "unsupported locale"}
	}
	return n, nil
}

// ValidatePattern returns a FormatError if pattern is malformed.
func ValidatePattern(pattern string) error {
	if _, err := compile(pattern); err != nil {
		return &Error{Op: "validate pattern", Kind: ErrFormat, Pattern: pattern, Reason: err.Error()}
	}
	return nil
}

// Parse text as a CalendarDate according to pattern, using English month and weekday names.
// Any mismatch between text and pattern, a malformed pattern or a pattern
// without year, month and day information results in a ParseError.
//
// Day of month accepts 1 to 31; a day past the end of the resolved month
// becomes its last day, so "2023-02-30" parses as 2023-02-28.
func Parse(text, pattern string) (CalendarDate, error) {
	return ParseLocale(text, pattern, language.English)
}

// ParseLocale is like Parse, matching month and weekday names of tag.
// An unsupported tag results in a FormatError.
func ParseLocale(text, pattern string, tag language.Tag) (CalendarDate, error) {
	const op = "parse"

	p, err := compile(pattern)
	if err != nil {
		return CalendarDate{}, &Error{Op: op, Kind: ErrParse, Value: text, Pattern: pattern, Reason: err.Error()}
	}
	n, err := names(op, tag)
	if err != nil {
		return CalendarDate{}, err
	}

	d, err := p.parse(text, n)
	if err != nil {
		return CalendarDate{}, &Error{Op: op, Kind: ErrParse, Value: text, Pattern: pattern, Reason: err.Error()}
	}
	return d, nil
}

// MustParse is like Parse but panics on error.
// It is meant for initializing variables with constant dates.
func MustParse(text, pattern string) CalendarDate {
	d, err := Parse(text, pattern)
	if err != nil {
		panic(err)
	}
	return d
}

// IsValid reports whether text can be parsed according to pattern.
// It never fails, any error from Parse results in false.
func IsValid(text, pattern string) bool {
	_, err := Parse(text, pattern)
	return err == nil
}

// Format d according to pattern, using English month and weekday names.
func Format(d CalendarDate, pattern string) (string, error) {
	return FormatLocale(d, pattern, language.English)
}

// FormatLocale formats d according to pattern, using month and weekday names of tag.
// A malformed pattern or unsupported tag results in a FormatError.
func FormatLocale(d CalendarDate, pattern string, tag language.Tag) (string, error) {
	const op = "format"

	if err := check(op, d); err != nil {
		return "", err
	}
	p, err := compile(pattern)
	if err != nil {
		return "", &Error{Op: op, Kind: ErrFormat, Pattern: pattern, Reason: err.Error()}
	}
	n, err := names(op, tag)
	if err != nil {
		return "", err
	}

	return p.format(d, n), nil
}

// MonthName returns the full name of the month of d, in the language of tag.
// For example "enero" for Spanish or "January" for English.
// A tag without name data results in a FormatError, there is no fallback language.
func MonthName(d CalendarDate, tag language.Tag) (string, error) {
	const op = "month name"

	if err := check(op, d); err != nil {
		return "", err
	}
	n, err := names(op, tag)
	if err != nil {
		return "", err
	}
	return n.Months[d.Month-1], nil
}

// Locales returns the tags for which month and weekday names are available.
func Locales() []language.Tag {
	return locale.Supported()
}
