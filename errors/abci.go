package errors

import (
	"fmt"
	"reflect"
)

const (
	// SuccessCode is returned for a transaction that was processed without
	// an error.
	SuccessCode = 0

	// All unclassified errors that do not provide a code are clubbed
	// under an internal error code and a generic message instead of
	// detailed error string.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// ResultInfo returns the code and log message that a transaction result
// must carry for the given error. Any error that does not provide a code
// is categorized as internal with code 1 and, unless debug is set, its
// message is replaced with a generic one.
func ResultInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessCode, ""
	}

	// Only registered errors can be exposed. Any error that does not
	// explicitly expose its state by providing a code must be silenced.
	if code := Code(err); code != internalCode {
		if debug {
			// Try to trigger full information formatting. This
			// might produce a stacktrace.
			return code, fmt.Sprintf("%+v", err)
		}
		if ErrPanic.Is(err) {
			return code, internalLog
		}
		return code, err.Error()
	}

	if debug {
		return internalCode, fmt.Sprintf("%+v", err)
	}
	return internalCode, internalLog
}

type coder interface {
	ABCICode() uint32
}

// Code returns the registered code of the root error wrapped by err. Nil
// maps to SuccessCode and unregistered errors to the internal code 1.
func Code(err error) uint32 {
	if errIsNil(err) {
		return SuccessCode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// errIsNil returns true if value represented by the given error is nil.
//
// Most of the time a simple == check is enough. There is a very narrowed
// spectrum of cases (mostly in tests) where a more sophisticated check is
// required.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}
