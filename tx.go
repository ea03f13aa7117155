package htlc

import (
	"reflect"

	"github.com/iov-one/htlc/errors"
)

// InstructionTag is the first byte of instruction data. It selects the
// operation the rest of the data encodes.
type InstructionTag uint8

// AccountMeta describes one account an instruction touches.
type AccountMeta struct {
	Pubkey     Pubkey
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta is a shortcut for the common literal.
func NewAccountMeta(pk Pubkey, signer, writable bool) AccountMeta {
	return AccountMeta{Pubkey: pk, IsSigner: signer, IsWritable: writable}
}

// Instruction is a call of a program with the accounts it may touch.
type Instruction struct {
	ProgramID Pubkey
	Accounts  []AccountMeta
	Data      []byte
}

// Tag returns the instruction tag. Empty data has no tag.
func (i Instruction) Tag() (InstructionTag, bool) {
	if len(i.Data) == 0 {
		return 0, false
	}
	return InstructionTag(i.Data[0]), true
}

// Msg is a decoded instruction payload.
type Msg interface {
	// Validate performs all checks that do not require state access.
	Validate() error

	// Bind checks the account list of the instruction against the payload
	// and resolves the parties the payload does not name explicitly. The
	// list must match exactly, including order and flags.
	Bind(programID Pubkey, accounts []AccountMeta) error
}

// MsgDecoder parses an instruction payload (without the tag byte).
type MsgDecoder func(payload []byte) (Msg, error)

// Tx represent the data sent from the user to the chain.
// It includes the message along with anything needed to pass through
// middleware, ie. signatures.
type Tx interface {
	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// InstructionTx is a transaction carrying one raw instruction. The router
// decodes and binds it before a handler sees the message.
type InstructionTx interface {
	Tx
	GetInstruction() Instruction
}

// TxDecoder can parse bytes into a Tx
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrState, "nil message")
	}

	// Reflection is needed here, because the destination is an
	// interface. This is a mirror image of json.Unmarshal.
	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrType, "invalid destination, not a pointer")
	}
	if dest.IsNil() {
		return errors.Wrap(errors.ErrType, "invalid destination, nil pointer")
	}
	src := reflect.ValueOf(msg)
	if src.Kind() == reflect.Ptr {
		src = src.Elem()
	}
	if !src.Type().AssignableTo(dest.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "message %T cannot be loaded into %T", msg, destination)
	}
	dest.Elem().Set(src)

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}

// ExpectAccounts compares the account list of an instruction with the one
// the decoded payload requires.
func ExpectAccounts(got, want []AccountMeta) error {
	if len(got) != len(want) {
		return errors.Wrapf(errors.ErrMalformedInstruction, "want %d accounts, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			return errors.Wrapf(errors.ErrMalformedInstruction,
				"account %d: want %s (signer=%t, writable=%t), got %s (signer=%t, writable=%t)",
				i, want[i].Pubkey, want[i].IsSigner, want[i].IsWritable,
				got[i].Pubkey, got[i].IsSigner, got[i].IsWritable)
		}
	}
	return nil
}
