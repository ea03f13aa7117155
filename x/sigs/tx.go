package sigs

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"golang.org/x/crypto/ed25519"
)

// SignatureLength is the size of an ed25519 signature.
const SignatureLength = ed25519.SignatureSize

// SignedTx represents a transaction that contains signatures,
// which can be verified by the sigs.Decorator
type SignedTx interface {
	htlc.Tx

	// GetSignBytes returns the bytes every signature is made over. They
	// must bind the chain id, so that a signature cannot be replayed on
	// another chain.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of each signer of the
	// transaction, paired with the key it claims to be made by.
	GetSignatures() []Signature
}

// Signature is a signature claimed to be made by the given key.
type Signature struct {
	Pubkey    htlc.Pubkey
	Signature []byte
}

// Validate ensures the Signature meets basic standards
func (s Signature) Validate() error {
	if s.Pubkey.IsZero() {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if len(s.Signature) != SignatureLength {
		return errors.Wrapf(errors.ErrUnauthorized, "signature must be %d bytes", SignatureLength)
	}
	return nil
}
