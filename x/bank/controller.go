package bank

import (
	"encoding/binary"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

const balancePrefix = "bank:"

// NativeMint is the mint of the ledger's own asset.
var NativeMint = htlc.Pubkey{}

// Controller is the functionality needed by other extensions to read and
// move balances.
type Controller interface {
	// Balance returns the amount of mint held by owner.
	Balance(db htlc.ReadOnlyKVStore, mint, owner htlc.Pubkey) (uint64, error)
	// MoveCoins moves the amount of mint from src to dst.
	MoveCoins(db htlc.KVStore, mint, src, dst htlc.Pubkey, amount uint64) error
	// IssueCoins adds the amount of mint to dst.
	IssueCoins(db htlc.KVStore, mint, dst htlc.Pubkey, amount uint64) error
}

// BaseController is the Controller backed by the store.
type BaseController struct{}

var _ Controller = BaseController{}

// NewController returns the store backed Controller.
func NewController() BaseController {
	return BaseController{}
}

// Balance returns the amount of mint held by owner. Unknown accounts hold
// nothing.
func (BaseController) Balance(db htlc.ReadOnlyKVStore, mint, owner htlc.Pubkey) (uint64, error) {
	raw, err := db.Get(BalanceKey(mint, owner))
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return decodeAmount(raw)
}

// MoveCoins moves the given amount from src to dst.
// If src doesn't have sufficient coins, it fails.
func (c BaseController) MoveCoins(db htlc.KVStore, mint, src, dst htlc.Pubkey, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "zero transfer")
	}
	have, err := c.Balance(db, mint, src)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "%s holds %d, need %d", src, have, amount)
	}
	if src == dst {
		return nil
	}
	recv, err := c.Balance(db, mint, dst)
	if err != nil {
		return err
	}
	if recv+amount < recv {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dst)
	}
	if err := setBalance(db, mint, src, have-amount); err != nil {
		return err
	}
	return setBalance(db, mint, dst, recv+amount)
}

// IssueCoins attempts to add the given amount of coins to
// the destination. Fails if it overflows the balance.
func (c BaseController) IssueCoins(db htlc.KVStore, mint, dst htlc.Pubkey, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "zero issue")
	}
	have, err := c.Balance(db, mint, dst)
	if err != nil {
		return err
	}
	if have+amount < have {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dst)
	}
	return setBalance(db, mint, dst, have+amount)
}

// BalanceKey returns the store key of a balance.
func BalanceKey(mint, owner htlc.Pubkey) []byte {
	key := make([]byte, 0, len(balancePrefix)+2*htlc.PubkeyLength)
	key = append(key, balancePrefix...)
	key = append(key, mint[:]...)
	return append(key, owner[:]...)
}

func setBalance(db htlc.KVStore, mint, owner htlc.Pubkey, amount uint64) error {
	key := BalanceKey(mint, owner)
	var err error
	if amount == 0 {
		err = db.Delete(key)
	} else {
		err = db.Set(key, encodeAmount(amount))
	}
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func encodeAmount(amount uint64) []byte {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, amount)
	return raw
}

func decodeAmount(raw []byte) (uint64, error) {
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrInvalidModel, "balance must be 8 bytes, got %d", len(raw))
	}
	return binary.LittleEndian.Uint64(raw), nil
}
