package aswap

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/x"
	"github.com/iov-one/htlc/x/bank"
	"github.com/iov-one/htlc/x/hashlock"
)

// Tag keys published with delivered swap transactions.
const (
	TagKeyEscrow = "escrow"
	TagKeyStatus = "status"
	TagKeySecret = "secret"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r htlc.Registry, auth x.Authenticator, ctrl bank.Controller) {
	bucket := NewBucket()
	v := vault{bank: ctrl}

	r.Handle(TagInitiate, DecodeInitiateMsg, InitiateHandler{auth: auth, bucket: bucket, vault: v})
	r.Handle(TagRedeem, DecodeRedeemMsg, RedeemHandler{auth: auth, bucket: bucket, vault: v})
	r.Handle(TagRefund, DecodeRefundMsg, RefundHandler{auth: auth, bucket: bucket, vault: v})
}

//---- initiate

// InitiateHandler creates an escrow and locks the funds in its vault.
type InitiateHandler struct {
	auth   x.Authenticator
	bucket Bucket
	vault  vault
}

var _ htlc.Handler = InitiateHandler{}

// Check does the validation.
func (h InitiateHandler) Check(ctx context.Context, db htlc.KVStore, tx htlc.Tx) (*htlc.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &htlc.CheckResult{}, nil
}

// Deliver moves the tokens from the initiator to the vault if all
// conditions are met.
func (h InitiateHandler) Deliver(ctx context.Context, db htlc.KVStore, tx htlc.Tx) (*htlc.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	now, _ := htlc.BlockTime(ctx)
	escrow := &Escrow{
		Status:         StatusActive,
		Initiator:      msg.Initiator,
		Participant:    msg.Participant,
		Mint:           msg.Mint,
		Amount:         msg.Amount,
		HashCommitment: msg.HashCommitment,
		Deadline:       msg.Deadline,
		CreatedAt:      htlc.AsUnixTime(now),
		Vault:          msg.Addresses.Vault,
		EscrowBump:     msg.Addresses.EscrowBump,
		VaultBump:      msg.Addresses.VaultBump,
	}
	if err := h.bucket.Save(db, msg.Addresses.Escrow, escrow); err != nil {
		return nil, err
	}
	if err := h.vault.lock(db, escrow); err != nil {
		return nil, err
	}

	htlc.GetLogger(ctx).Info("swap initiated",
		"escrow", msg.Addresses.Escrow,
		"amount", msg.Amount,
		"deadline", msg.Deadline)

	// return the escrow address to use in future calls
	return &htlc.DeliverResult{
		Data: msg.Addresses.Escrow.Bytes(),
		Log:  fmt.Sprintf("escrow %s locks %d", msg.Addresses.Escrow, msg.Amount),
		Tags: statusTags(msg.Addresses.Escrow, StatusActive),
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h InitiateHandler) validate(ctx context.Context, db htlc.KVStore, tx htlc.Tx) (*InitiateMsg, error) {
	var msg InitiateMsg
	if err := htlc.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Initiator must authorize this
	if !h.auth.HasSigner(ctx, msg.Initiator) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "initiator %s did not sign", msg.Initiator)
	}

	switch exists, err := h.bucket.Has(db, msg.Addresses.Escrow); {
	case err != nil:
		return nil, err
	case exists:
		return nil, errors.Wrapf(ErrCommitmentReused, "escrow %s", msg.Addresses.Escrow)
	}

	switch past, err := reached(ctx, msg.Deadline); {
	case err != nil:
		return nil, err
	case past:
		return nil, errors.Wrapf(ErrDeadlineInPast, "deadline %d", msg.Deadline)
	}

	have, err := h.vault.bank.Balance(db, msg.Mint, msg.Initiator)
	if err != nil {
		return nil, err
	}
	if have < msg.Amount {
		return nil, errors.Wrapf(errors.ErrInsufficientFunds, "%s holds %d, need %d", msg.Initiator, have, msg.Amount)
	}
	return &msg, nil
}

//---- redeem

// RedeemHandler releases the funds to the participant revealing the
// secret.
type RedeemHandler struct {
	auth   x.Authenticator
	bucket Bucket
	vault  vault
}

var _ htlc.Handler = RedeemHandler{}

// Check just verifies the redeem would succeed.
func (h RedeemHandler) Check(ctx context.Context, db htlc.KVStore, tx htlc.Tx) (*htlc.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &htlc.CheckResult{}, nil
}

// Deliver moves the tokens from the vault to the participant and publishes
// the secret.
func (h RedeemHandler) Deliver(ctx context.Context, db htlc.KVStore, tx htlc.Tx) (*htlc.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.vault.release(db, escrow, escrow.Participant); err != nil {
		return nil, err
	}
	escrow.Status = StatusRedeemed
	if err := h.bucket.Save(db, msg.Escrow, escrow); err != nil {
		return nil, err
	}

	secret := hex.EncodeToString(msg.Secret)
	htlc.GetLogger(ctx).Info("swap redeemed",
		"escrow", msg.Escrow,
		"amount", escrow.Amount,
		"secret", secret)

	return &htlc.DeliverResult{
		Log:  fmt.Sprintf("escrow %s redeemed, secret %s", msg.Escrow, secret),
		Tags: append(statusTags(msg.Escrow, StatusRedeemed), htlc.Tag{Key: TagKeySecret, Value: msg.Secret}),
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
//
// A redeemed escrow reports ErrAlreadySettled at any time. Otherwise time
// is checked before the status, so a redeem after the deadline reports
// ErrExpired, even for an escrow that was refunded.
func (h RedeemHandler) validate(ctx context.Context, db htlc.KVStore, tx htlc.Tx) (*RedeemMsg, *Escrow, error) {
	var msg RedeemMsg
	if err := htlc.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, errors.Wrap(err, "config")
	}
	if err := hashlock.ValidateSecret(msg.Secret, int(conf.MaxSecretSize)); err != nil {
		return nil, nil, err
	}

	escrow, err := loadEscrow(h.bucket, db, msg.Escrow, msg.Vault)
	if err != nil {
		return nil, nil, err
	}
	if escrow.Status == StatusRedeemed {
		return nil, nil, errors.Wrapf(ErrAlreadySettled, "escrow %s is %s", msg.Escrow, escrow.Status)
	}
	switch past, err := reached(ctx, escrow.Deadline); {
	case err != nil:
		return nil, nil, err
	case past:
		return nil, nil, errors.Wrapf(errors.ErrExpired, "escrow %s expired at %d", msg.Escrow, escrow.Deadline)
	}
	if escrow.Status != StatusActive {
		return nil, nil, errors.Wrapf(ErrAlreadySettled, "escrow %s is %s", msg.Escrow, escrow.Status)
	}
	if msg.Claimant != escrow.Participant || !h.auth.HasSigner(ctx, escrow.Participant) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "participant signature required")
	}
	if !hashlock.Verify(msg.Secret, escrow.HashCommitment) {
		return nil, nil, errors.Wrapf(ErrBadSecret, "escrow %s", msg.Escrow)
	}
	return &msg, escrow, nil
}

//---- refund

// RefundHandler returns funds to the initiator when the escrow expired.
type RefundHandler struct {
	auth   x.Authenticator
	bucket Bucket
	vault  vault
}

var _ htlc.Handler = RefundHandler{}

// Check just verifies the refund would succeed.
func (h RefundHandler) Check(ctx context.Context, db htlc.KVStore, tx htlc.Tx) (*htlc.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &htlc.CheckResult{}, nil
}

// Deliver moves all the tokens from the vault back to the initiator.
func (h RefundHandler) Deliver(ctx context.Context, db htlc.KVStore, tx htlc.Tx) (*htlc.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.vault.release(db, escrow, escrow.Initiator); err != nil {
		return nil, err
	}
	escrow.Status = StatusRefunded
	if err := h.bucket.Save(db, msg.Escrow, escrow); err != nil {
		return nil, err
	}

	htlc.GetLogger(ctx).Info("swap refunded",
		"escrow", msg.Escrow,
		"amount", escrow.Amount)

	return &htlc.DeliverResult{
		Log:  fmt.Sprintf("escrow %s refunded", msg.Escrow),
		Tags: statusTags(msg.Escrow, StatusRefunded),
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h RefundHandler) validate(ctx context.Context, db htlc.KVStore, tx htlc.Tx) (*RefundMsg, *Escrow, error) {
	var msg RefundMsg
	if err := htlc.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	escrow, err := loadEscrow(h.bucket, db, msg.Escrow, msg.Vault)
	if err != nil {
		return nil, nil, err
	}
	if escrow.Status != StatusActive {
		return nil, nil, errors.Wrapf(ErrAlreadySettled, "escrow %s is %s", msg.Escrow, escrow.Status)
	}
	if msg.Refunder != escrow.Initiator || !h.auth.HasSigner(ctx, escrow.Initiator) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "initiator signature required")
	}
	switch past, err := reached(ctx, escrow.Deadline); {
	case err != nil:
		return nil, nil, err
	case !past:
		return nil, nil, errors.Wrapf(ErrNotYetExpired, "escrow %s expires at %d", msg.Escrow, escrow.Deadline)
	}
	return &msg, escrow, nil
}

// loadEscrow loads the escrow and checks that the instruction names its
// vault.
func loadEscrow(bucket Bucket, db htlc.ReadOnlyKVStore, addr, vault htlc.Pubkey) (*Escrow, error) {
	escrow, err := bucket.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if escrow.Vault != vault {
		return nil, errors.Wrapf(errors.ErrMalformedInstruction, "vault of escrow %s is %s", addr, escrow.Vault)
	}
	return escrow, nil
}

func statusTags(escrow htlc.Pubkey, s Status) []htlc.Tag {
	return []htlc.Tag{
		{Key: TagKeyEscrow, Value: []byte(escrow.String())},
		{Key: TagKeyStatus, Value: []byte(s.String())},
	}
}
