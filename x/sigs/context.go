package sigs

import (
	"context"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/x"
)

type verifiedKey struct{}

// withVerified records keys whose signatures the Decorator checked. It
// stays unexported so that no other package can vouch for a signer.
func withVerified(ctx context.Context, keys []htlc.Pubkey) context.Context {
	return context.WithValue(ctx, verifiedKey{}, keys)
}

// Authenticate exposes the keys verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) Signers(ctx context.Context) []htlc.Pubkey {
	keys, _ := ctx.Value(verifiedKey{}).([]htlc.Pubkey)
	return keys
}

func (a Authenticate) HasSigner(ctx context.Context, key htlc.Pubkey) bool {
	return htlc.ContainsKey(a.Signers(ctx), key)
}
