package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Root errors shared by all extensions. Codes are part of the transaction
// result and must never change.
var (
	ErrUnauthorized         = Register(2, "unauthorized")
	ErrNotFound             = Register(3, "not found")
	ErrMalformedInstruction = Register(4, "malformed instruction")
	ErrInvalidModel         = Register(5, "invalid model")
	ErrHuman                = Register(7, "coding error")
	ErrEmpty                = Register(9, "value is empty")
	ErrState                = Register(10, "invalid state")
	ErrType                 = Register(11, "invalid type")
	ErrInsufficientFunds    = Register(12, "insufficient funds")
	ErrInvalidAmount        = Register(13, "invalid amount")
	ErrInput                = Register(14, "invalid input")
	ErrExpired              = Register(15, "expired")
	ErrOverflow             = Register(16, "value overflow")
	ErrDatabase             = Register(17, "database")
	ErrIteratorDone         = Register(18, "iterator done")

	// ErrPanic marks a recovered panic. Its message is never shown to
	// clients outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry holds every code in use. Code 1 is reserved for errors that
// were never registered.
var registry = map[uint32]*Error{1: nil}

// Register creates a root error. It must only be called while the
// program initializes and panics when code is taken.
func Register(code uint32, description string) *Error {
	if prev, taken := registry[code]; taken {
		what := "reserved"
		if prev != nil {
			what = prev.desc
		}
		panic(fmt.Sprintf("error code %d already used by %q", code, what))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error carrying an ABCI code. Errors returned at
// runtime wrap one of them.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// Is reports whether err is kind or wraps it. A nil kind matches only nil
// errors, including typed nil pointers.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		return errIsNil(err)
	}
	for err != nil {
		if err == kind {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap adds a description in front of err. The innermost wrap also
// records the stack. Wrapping nil returns nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrapped{msg: description, parent: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrapped struct {
	msg    string
	parent error
}

func (w *wrapped) Error() string {
	return w.msg + ": " + w.parent.Error()
}

func (w *wrapped) Cause() error {
	return w.parent
}

// Format prints the stack for %+v.
func (w *wrapped) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", w.msg, w.parent)
		return
	}
	fmt.Fprint(s, w.Error())
}

// Recover turns a panic into an ErrPanic assigned to *err. It must be
// deferred.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack found along the cause chain.
func stackTrace(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}
