package bank

import (
	"testing"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/htlctest"
	"github.com/iov-one/htlc/htlctest/assert"
	"github.com/iov-one/htlc/store"
)

func TestQuery(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := htlctest.RandomPubkey()
	bob := htlctest.RandomPubkey()
	token := htlctest.RandomPubkey()
	assert.Nil(t, ctrl.IssueCoins(db, token, alice, 3))
	assert.Nil(t, ctrl.IssueCoins(db, token, bob, 4))
	assert.Nil(t, ctrl.IssueCoins(db, NativeMint, alice, 5))

	qr := htlc.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/balances")

	res, err := h.Query(db, htlc.KeyQueryMod, append(token.Bytes(), alice[:]...))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, BalanceKey(token, alice), res[0].Key)
	assert.Equal(t, encodeAmount(3), res[0].Value)

	res, err = h.Query(db, htlc.KeyQueryMod, append(token.Bytes(), htlctest.RandomPubkey().Bytes()...))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = h.Query(db, htlc.PrefixQueryMod, token.Bytes())
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	_, err = h.Query(db, htlc.KeyQueryMod, token.Bytes())
	assert.IsErr(t, errors.ErrInput, err)
	_, err = h.Query(db, "range", nil)
	assert.IsErr(t, errors.ErrInput, err)
}
