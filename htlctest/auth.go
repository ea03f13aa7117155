package htlctest

import (
	"context"
	"fmt"

	"github.com/iov-one/htlc"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced keys.
// You can use either Signer or Keys (or both) attributes to reference
// keys. Each time all of them are considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer htlc.Pubkey

	// Keys represents an authentication of multiple signers.
	Keys []htlc.Pubkey
}

func (a *Auth) Signers(context.Context) []htlc.Pubkey {
	if a.Signer.IsZero() {
		return a.Keys
	}
	return append([]htlc.Pubkey{a.Signer}, a.Keys...)
}

func (a *Auth) HasSigner(ctx context.Context, key htlc.Pubkey) bool {
	return htlc.ContainsKey(a.Signers(ctx), key)
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve signers.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetSigners(ctx context.Context, signers ...htlc.Pubkey) context.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) Signers(ctx context.Context) []htlc.Pubkey {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	keys, ok := val.([]htlc.Pubkey)
	if !ok {
		panic(fmt.Sprintf("instead of []htlc.Pubkey got %T", val))
	}
	return keys
}

func (a *CtxAuth) HasSigner(ctx context.Context, key htlc.Pubkey) bool {
	return htlc.ContainsKey(a.Signers(ctx), key)
}
