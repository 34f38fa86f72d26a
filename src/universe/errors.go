package universe

import (
	"errors"
	"fmt"
)

//ErrorKind classifies the failures of the universe operations
type ErrorKind int

const (
	InvalidArgument ErrorKind = iota + 1
	InvalidState
	NotFound
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
	ErrNotFound        = errors.New("not found")
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case InvalidState:
		return "invalid state"
	case NotFound:
		return "not found"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

//Error is returned by every validating operation
//errors.Is matches it against the ErrInvalidArgument, ErrInvalidState and ErrNotFound sentinels
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Kind.String() + ": " + e.Msg
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidArgument:
		return e.Kind == InvalidArgument
	case ErrInvalidState:
		return e.Kind == InvalidState
	case ErrNotFound:
		return e.Kind == NotFound
	}
	return false
}

//KindOf returns the kind of err, zero if err is not an *Error
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func invalidArgument(op string, format string, args ...interface{}) error {
	return &Error{Kind: InvalidArgument, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func invalidState(op string, format string, args ...interface{}) error {
	return &Error{Kind: InvalidState, Op: op, Msg: fmt.Sprintf(format, args...)}
}
