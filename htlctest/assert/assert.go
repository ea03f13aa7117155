package assert

import (
	"reflect"

	"github.com/iov-one/htlc/errors"
)

// Tester is implemented by *testing.T and *testing.B.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil stops the test unless value is nil or a nil pointer, map, slice,
// chan, func or interface.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !nilValue(value) {
		// %+v prints the stack of wrapped errors
		t.Fatalf("unexpected value: %+v", value)
	}
}

func nilValue(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// Equal stops the test unless want and got are deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if reflect.DeepEqual(want, got) {
		return
	}
	t.Fatalf("mismatch\nwant (%T) %v\n got (%T) %v", want, want, got, got)
}

// Panics stops the test unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("no panic")
		}
	}()
	fn()
}

// IsErr stops the test unless got wraps want. A nil want requires a nil
// got.
func IsErr(t Tester, want *errors.Error, got error) {
	t.Helper()
	switch {
	case want == nil && got != nil:
		t.Fatalf("unexpected error: %+v", got)
	case want != nil && !want.Is(got):
		t.Fatalf("want %q error, got %+v", want, got)
	}
}
