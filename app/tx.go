package app

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/x/sigs"
)

// Account flags in the message encoding.
const (
	flagSigner   byte = 1 << 0
	flagWritable byte = 1 << 1
)

// Tx is a signed transaction carrying one instruction.
//
// Wire format:
//
//	compact-u16 n ‖ n×64 byte signatures ‖ message
//	message = compact-u16 len ‖ chain id ‖ program id ‖
//	          compact-u16 m ‖ m×(pubkey ‖ flags) ‖ compact-u16 len ‖ data
//
// Signature i is made by the i-th account flagged as signer, over the
// message bytes.
type Tx struct {
	Signatures  [][]byte
	ChainID     string
	Instruction htlc.Instruction
}

var (
	_ htlc.InstructionTx = (*Tx)(nil)
	_ sigs.SignedTx      = (*Tx)(nil)
)

// GetMsg always fails. The message of a Tx is decoded by the Router.
func (tx *Tx) GetMsg() (htlc.Msg, error) {
	return nil, errors.Wrap(errors.ErrMalformedInstruction, "instruction was not routed")
}

// GetInstruction implements htlc.InstructionTx.
func (tx *Tx) GetInstruction() htlc.Instruction {
	return tx.Instruction
}

// GetChainID returns the chain the transaction was signed for.
func (tx *Tx) GetChainID() string {
	return tx.ChainID
}

// GetSignBytes returns the encoded message.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	return MarshalMessage(tx.ChainID, tx.Instruction)
}

// GetSignatures pairs the signatures with the signer accounts in order.
func (tx *Tx) GetSignatures() []sigs.Signature {
	var out []sigs.Signature
	for _, acc := range tx.Instruction.Accounts {
		if !acc.IsSigner {
			continue
		}
		if len(out) == len(tx.Signatures) {
			break
		}
		out = append(out, sigs.Signature{Pubkey: acc.Pubkey, Signature: tx.Signatures[len(out)]})
	}
	return out
}

// Signers returns the accounts flagged as signer, in order.
func (tx *Tx) Signers() []htlc.Pubkey {
	var out []htlc.Pubkey
	for _, acc := range tx.Instruction.Accounts {
		if acc.IsSigner {
			out = append(out, acc.Pubkey)
		}
	}
	return out
}

// Marshal returns the wire form of the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	msg, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	if len(tx.Signatures) > htlc.MaxShortVec {
		return nil, errors.Wrap(errors.ErrInput, "too many signatures")
	}
	raw := htlc.AppendShortVec(nil, len(tx.Signatures))
	for i, sig := range tx.Signatures {
		if len(sig) != sigs.SignatureLength {
			return nil, errors.Wrapf(errors.ErrInput, "signature %d must be %d bytes", i, sigs.SignatureLength)
		}
		raw = append(raw, sig...)
	}
	return append(raw, msg...), nil
}

// MarshalMessage encodes the signed part of a transaction.
func MarshalMessage(chainID string, ix htlc.Instruction) ([]byte, error) {
	if len(chainID) > htlc.MaxShortVec || len(ix.Accounts) > htlc.MaxShortVec || len(ix.Data) > htlc.MaxShortVec {
		return nil, errors.Wrap(errors.ErrInput, "message too large")
	}
	raw := htlc.AppendShortVec(nil, len(chainID))
	raw = append(raw, chainID...)
	raw = append(raw, ix.ProgramID[:]...)
	raw = htlc.AppendShortVec(raw, len(ix.Accounts))
	for _, acc := range ix.Accounts {
		var flags byte
		if acc.IsSigner {
			flags |= flagSigner
		}
		if acc.IsWritable {
			flags |= flagWritable
		}
		raw = append(raw, acc.Pubkey[:]...)
		raw = append(raw, flags)
	}
	raw = htlc.AppendShortVec(raw, len(ix.Data))
	return append(raw, ix.Data...), nil
}

// DecodeTx parses the wire form of a transaction. The number of signatures
// must match the number of signer accounts.
func DecodeTx(raw []byte) (htlc.Tx, error) {
	var tx Tx
	d := htlc.NewDecoder(raw)
	n := d.ShortVec("signature count")
	for i := 0; i < n && d.Err() == nil; i++ {
		tx.Signatures = append(tx.Signatures, d.Bytes(sigs.SignatureLength, "signature"))
	}

	tx.ChainID = string(d.ShortVecBytes("chain id"))
	tx.Instruction.ProgramID = d.Pubkey("program id")
	m := d.ShortVec("account count")
	for i := 0; i < m && d.Err() == nil; i++ {
		pk := d.Pubkey("account")
		flags := d.Byte("account flags")
		if flags&^(flagSigner|flagWritable) != 0 {
			return nil, errors.Wrapf(errors.ErrInput, "account %d: unknown flags %#x", i, flags)
		}
		tx.Instruction.Accounts = append(tx.Instruction.Accounts,
			htlc.NewAccountMeta(pk, flags&flagSigner != 0, flags&flagWritable != 0))
	}
	tx.Instruction.Data = d.ShortVecBytes("data")
	if err := d.Finish(); err != nil {
		return nil, errors.Wrap(err, "tx")
	}

	if want := len(tx.Signers()); want != len(tx.Signatures) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "want %d signatures, got %d", want, len(tx.Signatures))
	}
	return &tx, nil
}

var _ htlc.TxDecoder = DecodeTx

// SignTx builds a transaction and signs it with the keys of the signer
// accounts, in order. sign is called once per signer.
func SignTx(chainID string, ix htlc.Instruction, sign func(signer htlc.Pubkey, msg []byte) ([]byte, error)) (*Tx, error) {
	tx := &Tx{ChainID: chainID, Instruction: ix}
	msg, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	for _, signer := range tx.Signers() {
		sig, err := sign(signer, msg)
		if err != nil {
			return nil, errors.Wrapf(err, "sign as %s", signer)
		}
		tx.Signatures = append(tx.Signatures, sig)
	}
	return tx, nil
}
