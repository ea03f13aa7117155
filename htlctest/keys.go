package htlctest

import (
	"crypto/rand"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"golang.org/x/crypto/ed25519"
)

// Key is an ed25519 key pair for signing test transactions.
type Key struct {
	priv ed25519.PrivateKey
}

// NewKey generates a random key pair.
func NewKey() *Key {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return &Key{priv: priv}
}

// PublicKey returns the account key.
func (k *Key) PublicKey() htlc.Pubkey {
	var pk htlc.Pubkey
	copy(pk[:], k.priv.Public().(ed25519.PublicKey))
	return pk
}

// Sign returns a 64 byte signature of the message.
func (k *Key) Sign(message []byte) []byte {
	return ed25519.Sign(k.priv, message)
}

// RandomPubkey returns a key nobody holds a private key for.
func RandomPubkey() htlc.Pubkey {
	var pk htlc.Pubkey
	if _, err := rand.Read(pk[:]); err != nil {
		panic(err)
	}
	return pk
}

// Signer returns a sign function for the given keys, as used when signing
// a transaction for every signer account. It fails for any other account.
func Signer(keys ...*Key) func(htlc.Pubkey, []byte) ([]byte, error) {
	return func(pk htlc.Pubkey, msg []byte) ([]byte, error) {
		for _, k := range keys {
			if k.PublicKey() == pk {
				return k.Sign(msg), nil
			}
		}
		return nil, errors.Wrapf(errors.ErrUnauthorized, "no key for %s", pk)
	}
}
