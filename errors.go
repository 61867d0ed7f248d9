package rangeparser

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code is the numeric result code of a failed parse.
// The values are stable and match the codes used by other range-parser ports.
type Code int

const (
	// InvalidArgument means the size or header argument had the wrong type or value.
	InvalidArgument Code = -3
	// NotAHeader means the header has no "=" or none of its ranges could be lexed.
	NotAHeader Code = -2
	// Unsatisfiable means every range was well-formed but none fits the resource.
	Unsatisfiable Code = -1
)

// Sentinel errors returned by Parse. Compare with errors.Is.
var (
	ErrInvalidArgument error = InvalidArgument
	ErrNotAHeader      error = NotAHeader
	ErrUnsatisfiable   error = Unsatisfiable
)

func (c Code) Error() string {
	switch c {
	case InvalidArgument:
		return "range-parser: invalid argument"
	case NotAHeader:
		return "range-parser: string is not a range header"
	case Unsatisfiable:
		return "range-parser: range not satisfiable"
	default:
		return fmt.Sprintf("range-parser: unknown code %d", int(c))
	}
}

// CodeOf returns the Code carried by err, or 0 if there is none.
func CodeOf(err error) Code {
	var code Code
	if errors.As(err, &code) {
		return code
	}
	return 0
}

// ArgumentError is raised (as a panic value) when Parse gets an argument of the wrong
// type or value and sentinel errors were not requested.
// It unwraps to ErrInvalidArgument.
type ArgumentError struct {
	// Argument is the name of the offending argument, "size" or "header".
	Argument string
	// Expected describes what the argument must be.
	Expected string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("Argument '%s' must be %s.", e.Argument, e.Expected)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
