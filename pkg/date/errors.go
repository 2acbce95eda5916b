package date

import (
	"errors"
	"strconv"
	"strings"
)

// Error kinds. Every error returned by this package wraps exactly one of them
// and can be tested with errors.Is.
var (
	ErrParse           = errors.New("date: parse error")
	ErrFormat          = errors.New("date: format error")
	ErrInvalidArgument = errors.New("date: invalid argument")
	ErrRange           = errors.New("date: out of range")
)

// Error describes a failed operation.
type Error struct {
	Op      string // operation name, such as "parse" or "add days"
	Kind    error  // one of the Err* kinds
	Value   string // offending input, if any
	Pattern string // format pattern, if any
	Reason  string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("date: ")
	b.WriteString(e.Op)
	if e.Value != "" {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(e.Value))
	}
	if e.Pattern != "" {
		b.WriteString(" with pattern ")
		b.WriteString(strconv.Quote(e.Pattern))
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func invalidArgument(op, reason string) error {
	return &Error{Op: op, Kind: ErrInvalidArgument, Reason: reason}
}

func outOfRange(op string, d CalendarDate, reason string) error {
	return &Error{Op: op, Kind: ErrRange, Value: d.String(), Reason: reason}
}
