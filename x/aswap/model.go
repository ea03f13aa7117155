package aswap

import (
	"encoding/binary"
	"fmt"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/x/hashlock"
)

const (
	escrowPrefix  = "aswap:"
	layoutVersion = 1

	// EscrowSize is the length of a serialized Escrow.
	EscrowSize = 1 + 1 + 3*htlc.PubkeyLength + 8 + hashlock.DigestSize + 8 + 8 + htlc.PubkeyLength + 1 + 1
)

// Seeds of the program derived addresses.
var (
	escrowSeed = []byte("swap_data")
	vaultSeed  = []byte("swap")
)

// Status is the stage of an escrow. Redeemed and Refunded are terminal.
type Status uint8

const (
	StatusActive Status = iota + 1
	StatusRedeemed
	StatusRefunded
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusRedeemed:
		return "redeemed"
	case StatusRefunded:
		return "refunded"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Escrow is the record of one swap. It is stored at the escrow address
// derived from the initiator and the hash commitment.
type Escrow struct {
	Status         Status
	Initiator      htlc.Pubkey
	Participant    htlc.Pubkey
	Mint           htlc.Pubkey
	Amount         uint64
	HashCommitment hashlock.Digest
	Deadline       htlc.UnixTime
	CreatedAt      htlc.UnixTime
	Vault          htlc.Pubkey
	EscrowBump     uint8
	VaultBump      uint8
}

// Validate ensures the Escrow is valid
func (e *Escrow) Validate() error {
	switch e.Status {
	case StatusActive, StatusRedeemed, StatusRefunded:
	default:
		return errors.Wrapf(errors.ErrInvalidModel, "status %d", e.Status)
	}
	if e.Initiator.IsZero() {
		return errors.Wrap(errors.ErrEmpty, "initiator")
	}
	if e.Participant.IsZero() {
		return errors.Wrap(errors.ErrEmpty, "participant")
	}
	if e.Amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "amount")
	}
	if e.Deadline == 0 {
		return errors.Wrap(errors.ErrEmpty, "deadline")
	}
	if err := e.Deadline.Validate(); err != nil {
		return errors.Wrap(err, "deadline")
	}
	if err := e.CreatedAt.Validate(); err != nil {
		return errors.Wrap(err, "created at")
	}
	if e.Vault.IsZero() {
		return errors.Wrap(errors.ErrEmpty, "vault")
	}
	return nil
}

// Marshal returns the fixed width binary form of the escrow.
func (e *Escrow) Marshal() ([]byte, error) {
	raw := make([]byte, 0, EscrowSize)
	raw = append(raw, layoutVersion, byte(e.Status))
	raw = append(raw, e.Initiator[:]...)
	raw = append(raw, e.Participant[:]...)
	raw = append(raw, e.Mint[:]...)
	raw = appendUint64(raw, e.Amount)
	raw = append(raw, e.HashCommitment[:]...)
	raw = appendUint64(raw, uint64(e.Deadline))
	raw = appendUint64(raw, uint64(e.CreatedAt))
	raw = append(raw, e.Vault[:]...)
	raw = append(raw, e.EscrowBump, e.VaultBump)
	return raw, nil
}

// Unmarshal reads the fixed width binary form of the escrow.
func (e *Escrow) Unmarshal(raw []byte) error {
	if len(raw) != EscrowSize {
		return errors.Wrapf(errors.ErrInvalidModel, "escrow must be %d bytes, got %d", EscrowSize, len(raw))
	}
	d := htlc.NewDecoder(raw)
	if v := d.Byte("version"); v != layoutVersion {
		return errors.Wrapf(errors.ErrInvalidModel, "unknown layout version %d", v)
	}
	e.Status = Status(d.Byte("status"))
	e.Initiator = d.Pubkey("initiator")
	e.Participant = d.Pubkey("participant")
	e.Mint = d.Pubkey("mint")
	e.Amount = d.Uint64("amount")
	copy(e.HashCommitment[:], d.Bytes(hashlock.DigestSize, "hash commitment"))
	e.Deadline = htlc.UnixTime(d.Int64("deadline"))
	e.CreatedAt = htlc.UnixTime(d.Int64("created at"))
	e.Vault = d.Pubkey("vault")
	e.EscrowBump = d.Byte("escrow bump")
	e.VaultBump = d.Byte("vault bump")
	if err := d.Finish(); err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return nil
}

func appendUint64(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

// Addresses are the program derived accounts of one swap.
type Addresses struct {
	Escrow     htlc.Pubkey
	EscrowBump uint8
	Vault      htlc.Pubkey
	VaultBump  uint8
}

// DeriveAddresses computes the escrow and vault addresses of the swap the
// initiator locks with the commitment.
func DeriveAddresses(programID, initiator htlc.Pubkey, commitment hashlock.Digest) (Addresses, error) {
	var a Addresses
	var err error
	a.Escrow, a.EscrowBump, err = htlc.FindProgramAddress(
		[][]byte{escrowSeed, initiator[:], commitment[:]}, programID)
	if err != nil {
		return a, errors.Wrap(err, "escrow address")
	}
	a.Vault, a.VaultBump, err = VaultAddress(programID, a.Escrow)
	return a, err
}

// VaultAddress computes the vault address belonging to an escrow.
func VaultAddress(programID, escrow htlc.Pubkey) (htlc.Pubkey, uint8, error) {
	vault, bump, err := htlc.FindProgramAddress([][]byte{vaultSeed, escrow[:]}, programID)
	if err != nil {
		return vault, 0, errors.Wrap(err, "vault address")
	}
	return vault, bump, nil
}

// Bucket stores escrows keyed by their address.
type Bucket struct{}

// NewBucket returns the escrow storage.
func NewBucket() Bucket {
	return Bucket{}
}

// EscrowKey returns the store key of the escrow at the address.
func EscrowKey(addr htlc.Pubkey) []byte {
	return append([]byte(escrowPrefix), addr[:]...)
}

// Has returns true if an escrow record exists at the address, whatever its
// status.
func (Bucket) Has(db htlc.ReadOnlyKVStore, addr htlc.Pubkey) (bool, error) {
	ok, err := db.Has(EscrowKey(addr))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Get loads the escrow at the address. It fails with ErrNotFound if there
// is none.
func (Bucket) Get(db htlc.ReadOnlyKVStore, addr htlc.Pubkey) (*Escrow, error) {
	raw, err := db.Get(EscrowKey(addr))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow %s", addr)
	}
	var e Escrow
	if err := e.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "escrow %s", addr)
	}
	if err := e.Validate(); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "escrow %s: %s", addr, err)
	}
	return &e, nil
}

// Save validates and writes the escrow at the address.
func (Bucket) Save(db htlc.KVStore, addr htlc.Pubkey, e *Escrow) error {
	if err := e.Validate(); err != nil {
		return errors.Wrap(err, "escrow")
	}
	raw, err := e.Marshal()
	if err != nil {
		return err
	}
	if err := db.Set(EscrowKey(addr), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
