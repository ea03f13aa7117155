/*
Package sigs provides basic authentication middleware to verify the ed25519
signatures on the transaction and to expose the signers to the handlers.

Replays are not tracked with nonces. Every transition of the swap program
can happen at most once per escrow, so a replayed transaction always fails.
*/
package sigs

import (
	"context"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// Decorator rejects a SignedTx unless it carries at least one signature
// and all of them verify. Handlers below it read the keys through
// Authenticate.
type Decorator struct{}

var _ htlc.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

func (Decorator) Check(ctx context.Context, db htlc.KVStore, tx htlc.Tx, next htlc.Checker) (*htlc.CheckResult, error) {
	ctx, err := verified(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (Decorator) Deliver(ctx context.Context, db htlc.KVStore, tx htlc.Tx, next htlc.Deliverer) (*htlc.DeliverResult, error) {
	ctx, err := verified(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// verified passes through transactions that do not carry signatures at
// all. Those can only reach handlers that need no signer.
func verified(ctx context.Context, tx htlc.Tx) (context.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}
	keys, err := VerifyTxSignatures(stx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "transaction is not signed")
	}
	return withVerified(ctx, keys), nil
}
