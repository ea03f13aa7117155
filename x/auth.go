package x

import (
	"context"

	"github.com/iov-one/htlc"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// Signers reveals all keys that signed the current transaction.
	Signers(context.Context) []htlc.Pubkey
	// HasSigner checks if the key signed the current transaction.
	HasSigner(context.Context, htlc.Pubkey) bool
}
