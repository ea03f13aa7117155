package aswap_test

import (
	"testing"
	"time"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/app"
	"github.com/iov-one/htlc/htlctest"
	"github.com/iov-one/htlc/store"
	"github.com/iov-one/htlc/x/aswap"
	"github.com/iov-one/htlc/x/bank"
	"github.com/iov-one/htlc/x/hashlock"
)

// blockNow is the block time all tests count from.
var blockNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

// swapEnv is a router with the swap program over an in memory store.
type swapEnv struct {
	t         testing.TB
	programID htlc.Pubkey
	router    *app.Router
	auth      *htlctest.CtxAuth
	bank      bank.BaseController
	db        htlc.CacheableKVStore
	mint      htlc.Pubkey

	initiator   htlc.Pubkey
	participant htlc.Pubkey
}

func newSwapEnv(t testing.TB) *swapEnv {
	t.Helper()
	e := &swapEnv{
		t:           t,
		programID:   htlctest.RandomPubkey(),
		auth:        &htlctest.CtxAuth{Key: "signers"},
		bank:        bank.NewController(),
		db:          store.MemStore(),
		mint:        htlctest.RandomPubkey(),
		initiator:   htlctest.RandomPubkey(),
		participant: htlctest.RandomPubkey(),
	}
	e.router = app.NewRouter(e.programID)
	aswap.RegisterRoutes(e.router, e.auth, e.bank)
	e.fund(e.initiator, 500)
	return e
}

func (e *swapEnv) fund(owner htlc.Pubkey, amount uint64) {
	e.t.Helper()
	if err := e.bank.IssueCoins(e.db, e.mint, owner, amount); err != nil {
		e.t.Fatalf("cannot fund %s: %s", owner, err)
	}
}

func (e *swapEnv) balance(owner htlc.Pubkey) uint64 {
	e.t.Helper()
	amount, err := e.bank.Balance(e.db, e.mint, owner)
	if err != nil {
		e.t.Fatalf("cannot read balance of %s: %s", owner, err)
	}
	return amount
}

func (e *swapEnv) escrow(addr htlc.Pubkey) *aswap.Escrow {
	e.t.Helper()
	escrow, err := aswap.NewBucket().Get(e.db, addr)
	if err != nil {
		e.t.Fatalf("cannot load escrow %s: %s", addr, err)
	}
	return escrow
}

func (e *swapEnv) deliver(now time.Time, ix htlc.Instruction, signers ...htlc.Pubkey) (*htlc.DeliverResult, error) {
	ctx := e.auth.SetSigners(htlctest.Context(now), signers...)
	return e.router.Deliver(ctx, e.db, &htlctest.Tx{Instruction: ix})
}

func (e *swapEnv) check(now time.Time, ix htlc.Instruction, signers ...htlc.Pubkey) error {
	ctx := e.auth.SetSigners(htlctest.Context(now), signers...)
	_, err := e.router.Check(ctx, e.db, &htlctest.Tx{Instruction: ix})
	return err
}

func (e *swapEnv) initiateIx(amount uint64, secret string, deadline htlc.UnixTime) htlc.Instruction {
	e.t.Helper()
	ix, err := aswap.NewInitiateInstruction(e.programID, e.initiator, e.participant, e.mint,
		amount, hashlock.Hash([]byte(secret)), deadline)
	if err != nil {
		e.t.Fatalf("cannot build initiate instruction: %s", err)
	}
	return ix
}

// initiate locks amount behind secret and returns the escrow address.
func (e *swapEnv) initiate(amount uint64, secret string, deadline htlc.UnixTime) htlc.Pubkey {
	e.t.Helper()
	res, err := e.deliver(blockNow, e.initiateIx(amount, secret, deadline), e.initiator)
	if err != nil {
		e.t.Fatalf("cannot initiate: %+v", err)
	}
	addr, err := htlc.PubkeyFromBytes(res.Data)
	if err != nil {
		e.t.Fatalf("initiate returned no escrow address: %s", err)
	}
	return addr
}

func (e *swapEnv) redeemIx(claimant, escrow htlc.Pubkey, secret []byte) htlc.Instruction {
	e.t.Helper()
	ix, err := aswap.NewRedeemInstruction(e.programID, claimant, escrow, secret)
	if err != nil {
		e.t.Fatalf("cannot build redeem instruction: %s", err)
	}
	return ix
}

func (e *swapEnv) refundIx(refunder, escrow htlc.Pubkey) htlc.Instruction {
	e.t.Helper()
	ix, err := aswap.NewRefundInstruction(e.programID, refunder, escrow)
	if err != nil {
		e.t.Fatalf("cannot build refund instruction: %s", err)
	}
	return ix
}

func tagValue(tags []htlc.Tag, key string) string {
	for _, t := range tags {
		if t.Key == key {
			return string(t.Value)
		}
	}
	return ""
}
