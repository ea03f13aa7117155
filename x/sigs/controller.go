package sigs

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"golang.org/x/crypto/ed25519"
)

// VerifyTxSignatures returns the keys of all signatures on tx, in order
// and without repetition. A single bad signature fails the whole set.
func VerifyTxSignatures(tx SignedTx) ([]htlc.Pubkey, error) {
	msg, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	var keys []htlc.Pubkey
	for i, sig := range tx.GetSignatures() {
		if err := VerifySignature(sig, msg); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		if !htlc.ContainsKey(keys, sig.Pubkey) {
			keys = append(keys, sig.Pubkey)
		}
	}
	return keys, nil
}

// VerifySignature checks that sig was made over msg by its key.
func VerifySignature(sig Signature, msg []byte) error {
	if err := sig.Validate(); err != nil {
		return err
	}
	if !ed25519.Verify(ed25519.PublicKey(sig.Pubkey.Bytes()), msg, sig.Signature) {
		return errors.Wrapf(errors.ErrUnauthorized, "bad signature by %s", sig.Pubkey)
	}
	return nil
}
