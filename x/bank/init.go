package bank

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

const optKey = "bank"

// GenesisAccount is used to parse the json from genesis file.
// Keys are base58 strings; a missing mint stands for the native asset.
type GenesisAccount struct {
	Owner  htlc.Pubkey `json:"owner"`
	Mint   htlc.Pubkey `json:"mint"`
	Amount uint64      `json:"amount"`
}

// Initializer fulfils the htlc.Initializer interface to load data from
// the genesis file
type Initializer struct {
	ctrl Controller
}

var _ htlc.Initializer = Initializer{}

// NewInitializer returns an initializer issuing genesis balances through
// the controller.
func NewInitializer(ctrl Controller) Initializer {
	return Initializer{ctrl: ctrl}
}

// FromGenesis will parse initial balances from genesis
// and save them to the database
func (i Initializer) FromGenesis(opts htlc.Options, kv htlc.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	for n, acct := range accts {
		if acct.Owner.IsZero() {
			return errors.Wrapf(errors.ErrEmpty, "account %d: owner", n)
		}
		if err := i.ctrl.IssueCoins(kv, acct.Mint, acct.Owner, acct.Amount); err != nil {
			return errors.Wrapf(err, "account %d", n)
		}
	}
	return nil
}
