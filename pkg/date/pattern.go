package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/muhlemmer/cleanutils/internal/locale"
)

type fieldKind int

const (
	fieldLiteral fieldKind = iota
	fieldYear
	fieldYear2
	fieldMonth
	fieldMonthShort
	fieldMonthFull
	fieldDay
	fieldDayOfYear
	fieldWeekdayShort
	fieldWeekdayFull
)

func (k fieldKind) numeric() bool {
	switch k {
	case fieldYear, fieldYear2, fieldMonth, fieldDay, fieldDayOfYear:
		return true
	}
	return false
}

// maxDigits of an unpadded numeric field.
var maxDigits = map[fieldKind]int{
	fieldYear:      9,
	fieldYear2:     2,
	fieldMonth:     2,
	fieldDay:       2,
	fieldDayOfYear: 3,
}

type field struct {
	kind  fieldKind
	width int    // minimal amount of digits
	text  string // literal text
}

type pattern []field

// compile a pattern string into fields.
// Letters are pattern tokens, a run of the same letter forms one field:
//
//	y, u   year. yy is a two-digit year based on 2000.
//	M, L   month. M and MM are numeric, MMM the short and MMMM the full name.
//	d      day of month.
//	D      day of year.
//	E      weekday. E to EEE the short and EEEE the full name.
//
// Text enclosed in single quotes is literal, two single quotes form
// a single quote. All other letters and the characters [ ] { } # are reserved.
// Anything else is copied as-is.
func compile(s string) (pattern, error) {
	var (
		p   pattern
		lit strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			p = append(p, field{kind: fieldLiteral, text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		c := s[i]

		switch {
		case c == '\'':
			if i+1 < len(s) && s[i+1] == '\'' {
				lit.WriteByte('\'')
				i += 2
				continue
			}
			end := i + 1
			for {
				j := strings.IndexByte(s[end:], '\'')
				if j < 0 {
					return nil, fmt.Errorf("unterminated quote at offset %d", i)
				}
				lit.WriteString(s[end : end+j])
				end += j + 1
				if end < len(s) && s[end] == '\'' {
					lit.WriteByte('\'')
					end++
					continue
				}
				break
			}
			i = end

		case isLetter(c):
			n := 1
			for i+n < len(s) && s[i+n] == c {
				n++
			}
			f, err := letterField(c, n)
			if err != nil {
				return nil, fmt.Errorf("%w at offset %d", err, i)
			}
			flush()
			p = append(p, f)
			i += n

		case strings.IndexByte("[]{}#", c) >= 0:
			return nil, fmt.Errorf("reserved character %q at offset %d", c, i)

		default:
			_, size := utf8.DecodeRuneInString(s[i:])
			lit.WriteString(s[i : i+size])
			i += size
		}
	}
	flush()

	return p, nil
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func letterField(c byte, n int) (field, error) {
	tooMany := fmt.Errorf("too many pattern letters %q", strings.Repeat(string(c), n))

	switch c {
	case 'y', 'u':
		if n == 2 {
			return field{kind: fieldYear2, width: 2}, nil
		}
		if n > maxDigits[fieldYear] {
			return field{}, tooMany
		}
		return field{kind: fieldYear, width: n}, nil
	case 'M', 'L':
		switch n {
		case 1, 2:
			return field{kind: fieldMonth, width: n}, nil
		case 3:
			return field{kind: fieldMonthShort}, nil
		case 4:
			return field{kind: fieldMonthFull}, nil
		}
		return field{}, tooMany
	case 'd':
		if n > 2 {
			return field{}, tooMany
		}
		return field{kind: fieldDay, width: n}, nil
	case 'D':
		if n > 3 {
			return field{}, tooMany
		}
		return field{kind: fieldDayOfYear, width: n}, nil
	case 'E':
		switch {
		case n <= 3:
			return field{kind: fieldWeekdayShort}, nil
		case n == 4:
			return field{kind: fieldWeekdayFull}, nil
		}
		return field{}, tooMany
	}
	return field{}, fmt.Errorf("unknown pattern letter %q", c)
}

func pad(b *strings.Builder, v, width int) {
	s := strconv.Itoa(v)
	for i := len(s); i < width; i++ {
		b.WriteByte('0')
	}
	b.WriteString(s)
}

// format d, which must be valid.
func (p pattern) format(d CalendarDate, names *locale.Names) string {
	var b strings.Builder

	for _, f := range p {
		switch f.kind {
		case fieldLiteral:
			b.WriteString(f.text)
		case fieldYear:
			pad(&b, d.Year, f.width)
		case fieldYear2:
			pad(&b, d.Year%100, 2)
		case fieldMonth:
			pad(&b, int(d.Month), f.width)
		case fieldMonthShort:
			b.WriteString(names.ShortMonths[d.Month-1])
		case fieldMonthFull:
			b.WriteString(names.Months[d.Month-1])
		case fieldDay:
			pad(&b, d.Day, f.width)
		case fieldDayOfYear:
			pad(&b, d.YearDay(), f.width)
		case fieldWeekdayShort:
			b.WriteString(names.ShortWeekdays[d.Weekday()])
		case fieldWeekdayFull:
			b.WriteString(names.Weekdays[d.Weekday()])
		}
	}

	return b.String()
}

// parsed holds the field values found in a text.
// Unset values are -1.
type parsed struct {
	year, month, day, yearDay int
	weekday                   int
}

type parseError struct {
	offset int
	reason string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.reason, e.offset)
}

// parse text into a CalendarDate.
// The complete text must be consumed and the fields must resolve
// to a single valid date.
func (p pattern) parse(text string, names *locale.Names) (CalendarDate, error) {
	v := parsed{-1, -1, -1, -1, -1}
	pos := 0

	for i, f := range p {
		switch f.kind {
		case fieldLiteral:
			if !strings.HasPrefix(text[pos:], f.text) {
				return CalendarDate{}, &parseError{pos, fmt.Sprintf("expected %q", f.text)}
			}
			pos += len(f.text)

		case fieldMonthShort, fieldMonthFull, fieldWeekdayShort, fieldWeekdayFull:
			list := names.ShortMonths
			switch f.kind {
			case fieldMonthFull:
				list = names.Months
			case fieldWeekdayShort:
				list = names.ShortWeekdays
			case fieldWeekdayFull:
				list = names.Weekdays
			}
			idx, n := matchName(text[pos:], list)
			if idx < 0 {
				return CalendarDate{}, &parseError{pos, "unknown name"}
			}
			if f.kind == fieldMonthShort || f.kind == fieldMonthFull {
				if err := v.set(&v.month, idx+1, pos); err != nil {
					return CalendarDate{}, err
				}
			} else if err := v.set(&v.weekday, idx, pos); err != nil {
				return CalendarDate{}, err
			}
			pos += n

		default:
			// padded fields and fields followed by another number have a fixed width,
			// except for years which may exceed their padding.
			limit := maxDigits[f.kind]
			if (f.width > 1 && f.kind != fieldYear) || (i+1 < len(p) && p[i+1].kind.numeric()) {
				limit = f.width
			}
			val, n := readDigits(text[pos:], limit)
			if n < f.width {
				return CalendarDate{}, &parseError{pos, fmt.Sprintf("expected %d digits", f.width)}
			}

			var err error
			switch f.kind {
			case fieldYear:
				err = v.set(&v.year, val, pos)
			case fieldYear2:
				err = v.set(&v.year, 2000+val, pos)
			case fieldMonth:
				err = v.set(&v.month, val, pos)
			case fieldDay:
				err = v.set(&v.day, val, pos)
			case fieldDayOfYear:
				err = v.set(&v.yearDay, val, pos)
			}
			if err != nil {
				return CalendarDate{}, err
			}
			pos += n
		}
	}

	if pos < len(text) {
		return CalendarDate{}, &parseError{pos, "unparsed trailing text"}
	}

	return v.resolve(len(text))
}

// set dst to val, unless it was already set to a different value.
func (v *parsed) set(dst *int, val, pos int) error {
	if *dst >= 0 && *dst != val {
		return &parseError{pos, "conflicting field values"}
	}
	*dst = val
	return nil
}

func (v *parsed) resolve(end int) (CalendarDate, error) {
	if v.year < 0 {
		return CalendarDate{}, &parseError{end, "year missing"}
	}
	if v.year < MinDate.Year || v.year > MaxDate.Year {
		return CalendarDate{}, &parseError{end, fmt.Sprintf("year %d out of range", v.year)}
	}

	var d CalendarDate

	switch {
	case v.month >= 0 && v.day >= 0:
		if v.month < 1 || v.month > 12 {
			return CalendarDate{}, &parseError{end, fmt.Sprintf("month %d out of range", v.month)}
		}
		if v.day < 1 || v.day > 31 {
			return CalendarDate{}, &parseError{end, fmt.Sprintf("day %d out of range", v.day)}
		}
		// days past the end of the month resolve to its last day.
		if last := DaysIn(time.Month(v.month), v.year); v.day > last {
			v.day = last
		}
		d = Of(v.year, time.Month(v.month), v.day)
		if v.yearDay >= 0 && v.yearDay != d.YearDay() {
			return CalendarDate{}, &parseError{end, "day of year does not match date"}
		}

	case v.yearDay >= 0:
		days := 365
		if IsLeapYear(v.year) {
			days = 366
		}
		if v.yearDay < 1 || v.yearDay > days {
			return CalendarDate{}, &parseError{end, fmt.Sprintf("day of year %d out of range", v.yearDay)}
		}
		d = CalendarDate(Of(v.year, time.January, 1).c().AddDays(v.yearDay - 1))
		if v.month >= 0 && v.month != int(d.Month) {
			return CalendarDate{}, &parseError{end, "month does not match day of year"}
		}

	default:
		return CalendarDate{}, &parseError{end, "month or day missing"}
	}

	if v.weekday >= 0 && time.Weekday(v.weekday) != d.Weekday() {
		return CalendarDate{}, &parseError{end, "weekday does not match date"}
	}

	return d, nil
}

// readDigits reads up to limit ASCII digits from the start of s.
func readDigits(s string, limit int) (val, n int) {
	for n < limit && n < len(s) && '0' <= s[n] && s[n] <= '9' {
		val = val*10 + int(s[n]-'0')
		n++
	}
	return val, n
}

// matchName returns the index of the longest name in list
// that case-insensitively prefixes s, and the amount of bytes it consumes.
// idx is -1 when nothing matches.
func matchName(s string, list []string) (idx, n int) {
	idx = -1
	for i, name := range list {
		l := prefixFold(s, name)
		if l > n {
			idx, n = i, l
		}
	}
	return idx, n
}

// prefixFold returns the length in bytes of the prefix of s
// which equals name under Unicode case folding, or 0.
func prefixFold(s, name string) int {
	var i int
	for _, r := range name {
		if i >= len(s) {
			return 0
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if !equalFoldRune(sr, r) {
			return 0
		}
		i += size
	}
	return i
}

func equalFoldRune(a, b rune) bool {
	return a == b || strings.EqualFold(string(a), string(b))
}
