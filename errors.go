package nummi

import (
	"errors"
	"fmt"
)

// ErrorKind identifies which field of an entry line is malformed.
type ErrorKind int

const (
	MissingDate ErrorKind = iota + 1
	MissingAmount
	InvalidAmount
	MissingTag
	InvalidTag
	InvalidDate
	InvalidDecimal
)

func (k ErrorKind) String() string {
	switch k {
	case MissingDate:
		return "missing date"
	case MissingAmount:
		return "missing amount"
	case InvalidAmount:
		return "invalid amount"
	case MissingTag:
		return "missing tag"
	case InvalidTag:
		return "invalid tag"
	case InvalidDate:
		return "invalid date"
	case InvalidDecimal:
		return "invalid decimal"
	default:
		return fmt.Sprintf("parse error %d", int(k))
	}
}

// ParseError is returned when a ledger line is not a valid entry.
// Value holds the offending field, Err the underlying cause if any.
type ParseError struct {
	Kind  ErrorKind
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case MissingDate, MissingAmount, MissingTag:
		return e.Kind.String()
	}
	return fmt.Sprintf("%s %q", e.Kind, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports whether target is a *ParseError of the same kind, so that
// errors.Is(err, &ParseError{Kind: MissingTag}) works on wrapped errors.
func (e *ParseError) Is(target error) bool {
	var t *ParseError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// ReadError locates a failure while reading the ledger: the file, and the
// 1-based line when the failure is about a line. Err is either a *ParseError or
// the I/O error.
type ReadError struct {
	Path string
	Line int
	Err  error
}

func (e *ReadError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *ReadError) Unwrap() error { return e.Err }

// ErrUnordered is returned by MonthlySeries when entries are not in chronological order.
var ErrUnordered = errors.New("entries are not in chronological order")
