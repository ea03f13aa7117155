package htlctest

import (
	"context"
	"time"

	"github.com/iov-one/htlc"
)

// ChainID is used by all test contexts.
const ChainID = "test-chain"

// Context returns a context with the chain id and the given block time, as
// the runtime would prepare it for a transaction.
func Context(now time.Time) context.Context {
	ctx := htlc.WithChainID(context.Background(), ChainID)
	return htlc.WithBlockTime(ctx, now)
}
