package aswap

import (
	"bytes"
	"testing"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/htlctest"
	"github.com/iov-one/htlc/htlctest/assert"
	"github.com/iov-one/htlc/x/hashlock"
)

func TestDecodeInitiateMsg(t *testing.T) {
	programID := htlctest.RandomPubkey()
	initiator := htlctest.RandomPubkey()
	participant := htlctest.RandomPubkey()
	mint := htlctest.RandomPubkey()
	commitment := hashlock.Hash([]byte("swap-42"))

	ix, err := NewInitiateInstruction(programID, initiator, participant, mint, 100, commitment, 1700000000)
	assert.Nil(t, err)
	assert.Equal(t, byte(TagInitiate), ix.Data[0])
	assert.Equal(t, 1+initiatePayloadSize, len(ix.Data))

	raw, err := DecodeInitiateMsg(ix.Data[1:])
	assert.Nil(t, err)
	msg := raw.(*InitiateMsg)
	assert.Equal(t, participant, msg.Participant)
	assert.Equal(t, uint64(100), msg.Amount)
	assert.Equal(t, commitment, msg.HashCommitment)
	assert.Equal(t, htlc.UnixTime(1700000000), msg.Deadline)
	assert.Equal(t, mint, msg.Mint)

	// unbound message cannot be used
	assert.IsErr(t, errors.ErrMalformedInstruction, msg.Validate())

	assert.Nil(t, msg.Bind(programID, ix.Accounts))
	assert.Nil(t, msg.Validate())
	addrs, err := DeriveAddresses(programID, initiator, commitment)
	assert.Nil(t, err)
	assert.Equal(t, initiator, msg.Initiator)
	assert.Equal(t, addrs, msg.Addresses)

	for name, payload := range map[string][]byte{
		"empty":     nil,
		"too short": ix.Data[1:initiatePayloadSize],
		"too long":  append(append([]byte{}, ix.Data[1:]...), 0),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeInitiateMsg(payload)
			assert.IsErr(t, errors.ErrMalformedInstruction, err)
		})
	}
}

func TestBindInitiateMsg(t *testing.T) {
	programID := htlctest.RandomPubkey()
	initiator := htlctest.RandomPubkey()
	commitment := hashlock.Hash([]byte("swap-42"))
	addrs, err := DeriveAddresses(programID, initiator, commitment)
	assert.Nil(t, err)

	cases := map[string]struct {
		ProgramID htlc.Pubkey
		Accounts  []htlc.AccountMeta
		WantErr   *errors.Error
	}{
		"derived accounts": {
			ProgramID: programID,
			Accounts:  partyAccounts(initiator, addrs.Escrow, addrs.Vault),
		},
		"no accounts": {
			ProgramID: programID,
			WantErr:   errors.ErrMalformedInstruction,
		},
		"other program": {
			ProgramID: htlctest.RandomPubkey(),
			Accounts:  partyAccounts(initiator, addrs.Escrow, addrs.Vault),
			WantErr:   errors.ErrMalformedInstruction,
		},
		"escrow of another initiator": {
			ProgramID: programID,
			Accounts:  partyAccounts(htlctest.RandomPubkey(), addrs.Escrow, addrs.Vault),
			WantErr:   errors.ErrMalformedInstruction,
		},
		"initiator not a signer": {
			ProgramID: programID,
			Accounts: []htlc.AccountMeta{
				htlc.NewAccountMeta(initiator, false, true),
				htlc.NewAccountMeta(addrs.Escrow, false, true),
				htlc.NewAccountMeta(addrs.Vault, false, true),
			},
			WantErr: errors.ErrMalformedInstruction,
		},
		"missing vault": {
			ProgramID: programID,
			Accounts:  partyAccounts(initiator, addrs.Escrow, addrs.Vault)[:2],
			WantErr:   errors.ErrMalformedInstruction,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg := InitiateMsg{
				Participant:    htlctest.RandomPubkey(),
				Amount:         1,
				HashCommitment: commitment,
				Deadline:       1,
			}
			err := msg.Bind(tc.ProgramID, tc.Accounts)
			assert.IsErr(t, tc.WantErr, err)
			if tc.WantErr != nil {
				assert.Equal(t, htlc.Pubkey{}, msg.Initiator)
			}
		})
	}
}

func TestValidateInitiateMsg(t *testing.T) {
	bound := func(m InitiateMsg) *InitiateMsg {
		m.Initiator = htlctest.RandomPubkey()
		m.Addresses = Addresses{Escrow: htlctest.RandomPubkey(), Vault: htlctest.RandomPubkey()}
		return &m
	}
	participant := htlctest.RandomPubkey()

	cases := map[string]struct {
		Msg     *InitiateMsg
		WantErr *errors.Error
	}{
		"valid": {
			Msg: bound(InitiateMsg{Participant: participant, Amount: 1, Deadline: 1}),
		},
		"zero amount": {
			Msg:     bound(InitiateMsg{Participant: participant, Deadline: 1}),
			WantErr: errors.ErrInvalidAmount,
		},
		"no participant": {
			Msg:     bound(InitiateMsg{Amount: 1, Deadline: 1}),
			WantErr: errors.ErrMalformedInstruction,
		},
		"negative deadline": {
			Msg:     bound(InitiateMsg{Participant: participant, Amount: 1, Deadline: -5}),
			WantErr: errors.ErrMalformedInstruction,
		},
		"not bound": {
			Msg:     &InitiateMsg{Participant: participant, Amount: 1, Deadline: 1},
			WantErr: errors.ErrMalformedInstruction,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.WantErr, tc.Msg.Validate())
		})
	}
}

func TestDecodeRedeemMsg(t *testing.T) {
	programID := htlctest.RandomPubkey()
	participant := htlctest.RandomPubkey()
	escrow := htlctest.RandomPubkey()
	secret := bytes.Repeat([]byte{0xab}, 200)

	ix, err := NewRedeemInstruction(programID, participant, escrow, secret)
	assert.Nil(t, err)
	assert.Equal(t, byte(TagRedeem), ix.Data[0])
	// 200 needs a two byte length prefix
	assert.Equal(t, 1+htlc.PubkeyLength+2+len(secret), len(ix.Data))

	raw, err := DecodeRedeemMsg(ix.Data[1:])
	assert.Nil(t, err)
	msg := raw.(*RedeemMsg)
	assert.Equal(t, escrow, msg.Escrow)
	assert.Equal(t, secret, msg.Secret)

	assert.IsErr(t, errors.ErrMalformedInstruction, msg.Validate())
	assert.Nil(t, msg.Bind(programID, ix.Accounts))
	assert.Nil(t, msg.Validate())
	vault, _, err := VaultAddress(programID, escrow)
	assert.Nil(t, err)
	assert.Equal(t, participant, msg.Claimant)
	assert.Equal(t, vault, msg.Vault)

	for name, payload := range map[string][]byte{
		"empty":            nil,
		"no secret length": ix.Data[1 : 1+htlc.PubkeyLength],
		"truncated secret": ix.Data[1 : len(ix.Data)-1],
		"trailing bytes":   append(append([]byte{}, ix.Data[1:]...), 0),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeRedeemMsg(payload)
			assert.IsErr(t, errors.ErrMalformedInstruction, err)
		})
	}
}

func TestDecodeRefundMsg(t *testing.T) {
	programID := htlctest.RandomPubkey()
	initiator := htlctest.RandomPubkey()
	escrow := htlctest.RandomPubkey()

	ix, err := NewRefundInstruction(programID, initiator, escrow)
	assert.Nil(t, err)
	assert.Equal(t, []byte{byte(TagRefund)}, ix.Data[:1])
	assert.Equal(t, escrow.Bytes(), ix.Data[1:])

	raw, err := DecodeRefundMsg(ix.Data[1:])
	assert.Nil(t, err)
	msg := raw.(*RefundMsg)
	assert.Nil(t, msg.Bind(programID, ix.Accounts))
	assert.Nil(t, msg.Validate())
	assert.Equal(t, initiator, msg.Refunder)

	// the vault must belong to the escrow
	other := htlctest.RandomPubkey()
	otherVault, _, err := VaultAddress(programID, other)
	assert.Nil(t, err)
	accounts := partyAccounts(initiator, escrow, otherVault)
	assert.IsErr(t, errors.ErrMalformedInstruction, (&RefundMsg{Escrow: escrow}).Bind(programID, accounts))

	_, err = DecodeRefundMsg(ix.Data[1:htlc.PubkeyLength])
	assert.IsErr(t, errors.ErrMalformedInstruction, err)
	_, err = DecodeRefundMsg(append(escrow.Bytes(), 1))
	assert.IsErr(t, errors.ErrMalformedInstruction, err)

	assert.IsErr(t, errors.ErrMalformedInstruction, (&RefundMsg{Refunder: initiator}).Validate())
}
