package aswap

import (
	"testing"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/htlctest"
	"github.com/iov-one/htlc/htlctest/assert"
	"github.com/iov-one/htlc/store"
	"github.com/iov-one/htlc/x/hashlock"
)

func newTestEscrow() *Escrow {
	return &Escrow{
		Status:         StatusActive,
		Initiator:      htlctest.RandomPubkey(),
		Participant:    htlctest.RandomPubkey(),
		Mint:           htlctest.RandomPubkey(),
		Amount:         100,
		HashCommitment: hashlock.Hash([]byte("swap-42")),
		Deadline:       1700003600,
		CreatedAt:      1700000000,
		Vault:          htlctest.RandomPubkey(),
		EscrowBump:     254,
		VaultBump:      253,
	}
}

func TestEscrowLayout(t *testing.T) {
	e := newTestEscrow()
	raw, err := e.Marshal()
	assert.Nil(t, err)
	assert.Equal(t, EscrowSize, len(raw))
	assert.Equal(t, byte(layoutVersion), raw[0])
	assert.Equal(t, byte(StatusActive), raw[1])
	assert.Equal(t, e.Initiator[:], raw[2:34])

	var got Escrow
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, *e, got)

	raw[0] = 9
	assert.IsErr(t, errors.ErrInvalidModel, got.Unmarshal(raw))
	assert.IsErr(t, errors.ErrInvalidModel, got.Unmarshal(raw[:EscrowSize-1]))
}

func TestEscrowValidate(t *testing.T) {
	cases := map[string]struct {
		Mutate  func(e *Escrow)
		WantErr *errors.Error
	}{
		"valid":                {Mutate: func(*Escrow) {}},
		"redeemed":             {Mutate: func(e *Escrow) { e.Status = StatusRedeemed }},
		"unknown status":       {Mutate: func(e *Escrow) { e.Status = 7 }, WantErr: errors.ErrInvalidModel},
		"zero status":          {Mutate: func(e *Escrow) { e.Status = 0 }, WantErr: errors.ErrInvalidModel},
		"no initiator":         {Mutate: func(e *Escrow) { e.Initiator = htlc.Pubkey{} }, WantErr: errors.ErrEmpty},
		"no participant":       {Mutate: func(e *Escrow) { e.Participant = htlc.Pubkey{} }, WantErr: errors.ErrEmpty},
		"zero amount":          {Mutate: func(e *Escrow) { e.Amount = 0 }, WantErr: errors.ErrInvalidAmount},
		"no deadline":          {Mutate: func(e *Escrow) { e.Deadline = 0 }, WantErr: errors.ErrEmpty},
		"no vault":             {Mutate: func(e *Escrow) { e.Vault = htlc.Pubkey{} }, WantErr: errors.ErrEmpty},
		"native mint is valid": {Mutate: func(e *Escrow) { e.Mint = htlc.Pubkey{} }},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			e := newTestEscrow()
			tc.Mutate(e)
			assert.IsErr(t, tc.WantErr, e.Validate())
		})
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "active", StatusActive.String())
	assert.Equal(t, "redeemed", StatusRedeemed.String())
	assert.Equal(t, "refunded", StatusRefunded.String())
	assert.Equal(t, "status(9)", Status(9).String())
}

func TestDeriveAddresses(t *testing.T) {
	programID := htlctest.RandomPubkey()
	initiator := htlctest.RandomPubkey()
	commitment := hashlock.Hash([]byte("swap-42"))

	a, err := DeriveAddresses(programID, initiator, commitment)
	assert.Nil(t, err)
	b, err := DeriveAddresses(programID, initiator, commitment)
	assert.Nil(t, err)
	assert.Equal(t, a, b)

	if a.Escrow == a.Vault {
		t.Fatal("escrow and vault must differ")
	}
	vault, bump, err := VaultAddress(programID, a.Escrow)
	assert.Nil(t, err)
	assert.Equal(t, a.Vault, vault)
	assert.Equal(t, a.VaultBump, bump)

	other, err := DeriveAddresses(programID, initiator, hashlock.Hash([]byte("swap-43")))
	assert.Nil(t, err)
	if other.Escrow == a.Escrow {
		t.Fatal("escrow address must depend on the commitment")
	}
	foreign, err := DeriveAddresses(htlctest.RandomPubkey(), initiator, commitment)
	assert.Nil(t, err)
	if foreign.Escrow == a.Escrow {
		t.Fatal("escrow address must depend on the program")
	}
}

func TestBucket(t *testing.T) {
	db := store.MemStore()
	b := NewBucket()
	addr := htlctest.RandomPubkey()

	ok, err := b.Has(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
	_, err = b.Get(db, addr)
	assert.IsErr(t, errors.ErrNotFound, err)

	e := newTestEscrow()
	assert.Nil(t, b.Save(db, addr, e))
	ok, err = b.Has(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)
	got, err := b.Get(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, e, got)

	e.Amount = 0
	assert.IsErr(t, errors.ErrInvalidAmount, b.Save(db, addr, e))

	// a corrupted record is not returned
	assert.Nil(t, db.Set(EscrowKey(addr), []byte{layoutVersion}))
	_, err = b.Get(db, addr)
	assert.IsErr(t, errors.ErrInvalidModel, err)
}
