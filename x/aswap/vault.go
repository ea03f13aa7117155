package aswap

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/x/bank"
)

// vault moves the locked asset of an escrow. Vault addresses are off curve,
// so no signer can move their balance. Genesis may still credit one.
type vault struct {
	bank bank.Controller
}

// lock moves the escrow amount from the initiator to the vault.
func (v vault) lock(db htlc.KVStore, e *Escrow) error {
	return v.bank.MoveCoins(db, e.Mint, e.Initiator, e.Vault, e.Amount)
}

// release moves the escrow amount from the vault to to. Anything credited
// to the vault on top of the amount stays there.
func (v vault) release(db htlc.KVStore, e *Escrow, to htlc.Pubkey) error {
	held, err := v.bank.Balance(db, e.Mint, e.Vault)
	if err != nil {
		return err
	}
	if held < e.Amount {
		return errors.Wrapf(errors.ErrHuman, "vault %s holds %d, escrow amount is %d", e.Vault, held, e.Amount)
	}
	return v.bank.MoveCoins(db, e.Mint, e.Vault, to, e.Amount)
}
