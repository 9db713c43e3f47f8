package factorial

import (
	"errors"
	"fmt"
)

// ValueError exposes the input value a task failure belongs to.
type ValueError interface {
	error
	Unwrap() error
	Value() int
}

type valueTaggedError struct {
	err   error
	value int
}

func newValueError(err error, value int) error {
	if err == nil {
		return nil
	}
	return &valueTaggedError{err: err, value: value}
}

func (e *valueTaggedError) Error() string { return e.err.Error() }
func (e *valueTaggedError) Unwrap() error { return e.err }
func (e *valueTaggedError) Value() int    { return e.value }

func (e *valueTaggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "task(value=%d): %+v", e.value, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractValue returns the input value err was tagged with, if any.
func ExtractValue(err error) (int, bool) {
	var ve ValueError
	if errors.As(err, &ve) {
		return ve.Value(), true
	}
	return 0, false
}
