package app

import (
	"context"
	"testing"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/htlctest"
	"github.com/iov-one/htlc/htlctest/assert"
	"github.com/iov-one/htlc/store"
)

// pingMsg is a one byte payload naming its single signer account.
type pingMsg struct {
	Value  byte
	Signer htlc.Pubkey
}

func (m *pingMsg) Validate() error { return nil }

func (m *pingMsg) Bind(programID htlc.Pubkey, accounts []htlc.AccountMeta) error {
	if len(accounts) == 0 {
		return errors.Wrap(errors.ErrMalformedInstruction, "no accounts")
	}
	want := []htlc.AccountMeta{htlc.NewAccountMeta(accounts[0].Pubkey, true, false)}
	if err := htlc.ExpectAccounts(accounts, want); err != nil {
		return err
	}
	m.Signer = accounts[0].Pubkey
	return nil
}

func decodePing(payload []byte) (htlc.Msg, error) {
	if len(payload) != 1 {
		return nil, errors.Wrap(errors.ErrInput, "ping is one byte")
	}
	return &pingMsg{Value: payload[0]}, nil
}

// msgRecorder is a handler remembering the last message it was given.
type msgRecorder struct {
	htlctest.Handler
	msg htlc.Msg
}

func (h *msgRecorder) Deliver(ctx context.Context, db htlc.KVStore, tx htlc.Tx) (*htlc.DeliverResult, error) {
	h.msg, _ = tx.GetMsg()
	return h.Handler.Deliver(ctx, db, tx)
}

func TestRouter(t *testing.T) {
	program := htlctest.RandomPubkey()
	signer := htlctest.RandomPubkey()

	r := NewRouter(program)
	h := &msgRecorder{}
	r.Handle(7, decodePing, h)

	assert.Panics(t, func() { r.Handle(7, decodePing, h) })
	assert.Panics(t, func() { r.Handle(8, nil, h) })

	signerAcc := []htlc.AccountMeta{htlc.NewAccountMeta(signer, true, false)}

	cases := map[string]struct {
		tx      htlc.Tx
		wantErr *errors.Error
		wantMsg htlc.Msg
	}{
		"routed": {
			tx:      &htlctest.Tx{Instruction: htlc.Instruction{ProgramID: program, Accounts: signerAcc, Data: []byte{7, 42}}},
			wantMsg: &pingMsg{Value: 42, Signer: signer},
		},
		"foreign program": {
			tx:      &htlctest.Tx{Instruction: htlc.Instruction{ProgramID: signer, Accounts: signerAcc, Data: []byte{7, 42}}},
			wantErr: errors.ErrMalformedInstruction,
		},
		"empty data": {
			tx:      &htlctest.Tx{Instruction: htlc.Instruction{ProgramID: program, Accounts: signerAcc}},
			wantErr: errors.ErrMalformedInstruction,
		},
		"unknown tag": {
			tx:      &htlctest.Tx{Instruction: htlc.Instruction{ProgramID: program, Accounts: signerAcc, Data: []byte{9, 42}}},
			wantErr: errors.ErrMalformedInstruction,
		},
		"decode failure": {
			tx:      &htlctest.Tx{Instruction: htlc.Instruction{ProgramID: program, Accounts: signerAcc, Data: []byte{7, 42, 43}}},
			wantErr: errors.ErrMalformedInstruction,
		},
		"account flags mismatch": {
			tx: &htlctest.Tx{Instruction: htlc.Instruction{
				ProgramID: program,
				Accounts:  []htlc.AccountMeta{htlc.NewAccountMeta(signer, false, false)},
				Data:      []byte{7, 42},
			}},
			wantErr: errors.ErrMalformedInstruction,
		},
		"extra account": {
			tx: &htlctest.Tx{Instruction: htlc.Instruction{
				ProgramID: program,
				Accounts:  append(signerAcc, htlc.NewAccountMeta(program, false, false)),
				Data:      []byte{7, 42},
			}},
			wantErr: errors.ErrMalformedInstruction,
		},
		"no instruction": {
			tx:      nil,
			wantErr: errors.ErrMalformedInstruction,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h.msg = nil
			calls := h.CallCount()
			db := store.MemStore()

			_, err := r.Check(context.Background(), db, tc.tx)
			assert.IsErr(t, tc.wantErr, err)
			_, err = r.Deliver(context.Background(), db, tc.tx)
			assert.IsErr(t, tc.wantErr, err)

			if tc.wantErr != nil {
				assert.Equal(t, calls, h.CallCount())
				return
			}
			assert.Equal(t, calls+2, h.CallCount())
			assert.Equal(t, tc.wantMsg, h.msg)
		})
	}
}
