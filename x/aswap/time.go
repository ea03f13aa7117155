package aswap

import (
	"context"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// reached reports whether the block clock has arrived at the deadline.
// A deadline equal to the block time counts as reached.
func reached(ctx context.Context, deadline htlc.UnixTime) (bool, error) {
	now, ok := htlc.BlockTime(ctx)
	if !ok {
		return false, errors.Wrap(errors.ErrState, "block time not set")
	}
	return htlc.AsUnixTime(now) >= deadline, nil
}
