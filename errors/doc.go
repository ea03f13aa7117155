/*
Package errors implements the error taxonomy of the swap program.

Every failure returned to a client wraps one of the root errors declared
with Register. Each root error carries a stable numeric code, so clients can
tell apart a rejected secret from an expired escrow without parsing messages.

Root errors shared by all packages are declared here. Packages that need a
failure kind of their own (x/aswap does) register it at startup with
Register(code, description); reusing a code panics.

Create errors at the failure site with errors.Wrap(ErrXyz, "...") or
errors.Wrap(err, "...") so that a stack trace is attached. Only the innermost
wrap records the trace.

	%s is just the error message
	%+v is the full stack trace
*/
package errors
