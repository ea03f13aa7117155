package aswap

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/x/hashlock"
)

// Instruction tags of the swap program.
const (
	TagInitiate htlc.InstructionTag = 0
	TagRedeem   htlc.InstructionTag = 1
	TagRefund   htlc.InstructionTag = 2
)

const initiatePayloadSize = htlc.PubkeyLength + 8 + hashlock.DigestSize + 8 + htlc.PubkeyLength

var (
	_ htlc.Msg = (*InitiateMsg)(nil)
	_ htlc.Msg = (*RedeemMsg)(nil)
	_ htlc.Msg = (*RefundMsg)(nil)
)

// InitiateMsg locks Amount of Mint behind HashCommitment until Deadline.
//
// The initiator and the derived addresses are not part of the payload.
// Bind takes them from the account list.
type InitiateMsg struct {
	Participant    htlc.Pubkey
	Amount         uint64
	HashCommitment hashlock.Digest
	Deadline       htlc.UnixTime
	Mint           htlc.Pubkey

	Initiator htlc.Pubkey
	Addresses Addresses
}

// DecodeInitiateMsg parses the payload of an Initiate instruction.
func DecodeInitiateMsg(payload []byte) (htlc.Msg, error) {
	if len(payload) != initiatePayloadSize {
		return nil, errors.Wrapf(errors.ErrMalformedInstruction,
			"initiate payload must be %d bytes, got %d", initiatePayloadSize, len(payload))
	}
	d := htlc.NewDecoder(payload)
	m := InitiateMsg{
		Participant: d.Pubkey("participant"),
		Amount:      d.Uint64("amount"),
	}
	copy(m.HashCommitment[:], d.Bytes(hashlock.DigestSize, "hash commitment"))
	m.Deadline = htlc.UnixTime(d.Int64("deadline"))
	m.Mint = d.Pubkey("mint")
	if err := d.Finish(); err != nil {
		return nil, errors.Wrap(errors.ErrMalformedInstruction, err.Error())
	}
	return &m, nil
}

// Payload returns the instruction data without the tag.
func (m *InitiateMsg) Payload() []byte {
	raw := make([]byte, 0, initiatePayloadSize)
	raw = append(raw, m.Participant[:]...)
	raw = appendUint64(raw, m.Amount)
	raw = append(raw, m.HashCommitment[:]...)
	raw = appendUint64(raw, uint64(m.Deadline))
	return append(raw, m.Mint[:]...)
}

// Validate makes sure basic rules are enforced upon input data.
func (m *InitiateMsg) Validate() error {
	if m.Participant.IsZero() {
		return errors.Wrap(errors.ErrMalformedInstruction, "participant is the default key")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "amount must be positive")
	}
	if m.Deadline <= 0 {
		return errors.Wrap(errors.ErrMalformedInstruction, "deadline is required")
	}
	if m.Initiator.IsZero() || m.Addresses.Escrow.IsZero() {
		return errors.Wrap(errors.ErrMalformedInstruction, "accounts not bound")
	}
	return nil
}

// Bind reads the initiator from the first account and checks the escrow and
// vault accounts against the addresses derived from it.
func (m *InitiateMsg) Bind(programID htlc.Pubkey, accounts []htlc.AccountMeta) error {
	if len(accounts) == 0 {
		return errors.Wrap(errors.ErrMalformedInstruction, "missing initiator account")
	}
	initiator := accounts[0].Pubkey
	addrs, err := DeriveAddresses(programID, initiator, m.HashCommitment)
	if err != nil {
		return errors.Wrap(errors.ErrMalformedInstruction, err.Error())
	}
	if err := htlc.ExpectAccounts(accounts, partyAccounts(initiator, addrs.Escrow, addrs.Vault)); err != nil {
		return err
	}
	m.Initiator = initiator
	m.Addresses = addrs
	return nil
}

// RedeemMsg claims an escrow by revealing the secret of its commitment.
type RedeemMsg struct {
	Escrow htlc.Pubkey
	Secret []byte

	// Claimant is the signer taken from the account list.
	Claimant htlc.Pubkey
	Vault    htlc.Pubkey
}

// DecodeRedeemMsg parses the payload of a Redeem instruction.
func DecodeRedeemMsg(payload []byte) (htlc.Msg, error) {
	d := htlc.NewDecoder(payload)
	m := RedeemMsg{
		Escrow: d.Pubkey("escrow"),
		Secret: d.ShortVecBytes("secret"),
	}
	if err := d.Finish(); err != nil {
		return nil, errors.Wrap(errors.ErrMalformedInstruction, err.Error())
	}
	return &m, nil
}

// Payload returns the instruction data without the tag.
func (m *RedeemMsg) Payload() []byte {
	raw := make([]byte, 0, htlc.PubkeyLength+3+len(m.Secret))
	raw = append(raw, m.Escrow[:]...)
	raw = htlc.AppendShortVec(raw, len(m.Secret))
	return append(raw, m.Secret...)
}

// Validate makes sure basic rules are enforced upon input data. The secret
// length limit is configuration and is checked by the handler.
func (m *RedeemMsg) Validate() error {
	if m.Escrow.IsZero() {
		return errors.Wrap(errors.ErrMalformedInstruction, "escrow is the default key")
	}
	if err := hashlock.ValidateSecret(m.Secret, htlc.MaxShortVec); err != nil {
		return err
	}
	if m.Claimant.IsZero() {
		return errors.Wrap(errors.ErrMalformedInstruction, "accounts not bound")
	}
	return nil
}

// Bind reads the claimant from the first account and checks the escrow and
// vault accounts.
func (m *RedeemMsg) Bind(programID htlc.Pubkey, accounts []htlc.AccountMeta) error {
	claimant, vault, err := bindSettlement(programID, m.Escrow, accounts)
	if err != nil {
		return err
	}
	m.Claimant = claimant
	m.Vault = vault
	return nil
}

// RefundMsg returns the funds of an expired escrow to its initiator.
type RefundMsg struct {
	Escrow htlc.Pubkey

	// Refunder is the signer taken from the account list.
	Refunder htlc.Pubkey
	Vault    htlc.Pubkey
}

// DecodeRefundMsg parses the payload of a Refund instruction.
func DecodeRefundMsg(payload []byte) (htlc.Msg, error) {
	if len(payload) != htlc.PubkeyLength {
		return nil, errors.Wrapf(errors.ErrMalformedInstruction,
			"refund payload must be %d bytes, got %d", htlc.PubkeyLength, len(payload))
	}
	escrow, err := htlc.PubkeyFromBytes(payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMalformedInstruction, err.Error())
	}
	return &RefundMsg{Escrow: escrow}, nil
}

// Payload returns the instruction data without the tag.
func (m *RefundMsg) Payload() []byte {
	return m.Escrow.Bytes()
}

// Validate makes sure basic rules are enforced upon input data.
func (m *RefundMsg) Validate() error {
	if m.Escrow.IsZero() {
		return errors.Wrap(errors.ErrMalformedInstruction, "escrow is the default key")
	}
	if m.Refunder.IsZero() {
		return errors.Wrap(errors.ErrMalformedInstruction, "accounts not bound")
	}
	return nil
}

// Bind reads the refunder from the first account and checks the escrow and
// vault accounts.
func (m *RefundMsg) Bind(programID htlc.Pubkey, accounts []htlc.AccountMeta) error {
	refunder, vault, err := bindSettlement(programID, m.Escrow, accounts)
	if err != nil {
		return err
	}
	m.Refunder = refunder
	m.Vault = vault
	return nil
}

func bindSettlement(programID, escrow htlc.Pubkey, accounts []htlc.AccountMeta) (htlc.Pubkey, htlc.Pubkey, error) {
	var signer htlc.Pubkey
	if len(accounts) == 0 {
		return signer, signer, errors.Wrap(errors.ErrMalformedInstruction, "missing signer account")
	}
	vault, _, err := VaultAddress(programID, escrow)
	if err != nil {
		return signer, signer, errors.Wrap(errors.ErrMalformedInstruction, err.Error())
	}
	signer = accounts[0].Pubkey
	if err := htlc.ExpectAccounts(accounts, partyAccounts(signer, escrow, vault)); err != nil {
		return htlc.Pubkey{}, htlc.Pubkey{}, err
	}
	return signer, vault, nil
}

// partyAccounts is the account list shared by all swap instructions.
func partyAccounts(party, escrow, vault htlc.Pubkey) []htlc.AccountMeta {
	return []htlc.AccountMeta{
		htlc.NewAccountMeta(party, true, true),
		htlc.NewAccountMeta(escrow, false, true),
		htlc.NewAccountMeta(vault, false, true),
	}
}

// NewInitiateInstruction builds the instruction locking amount of mint
// from initiator for participant.
func NewInitiateInstruction(programID, initiator, participant, mint htlc.Pubkey,
	amount uint64, commitment hashlock.Digest, deadline htlc.UnixTime) (htlc.Instruction, error) {
	addrs, err := DeriveAddresses(programID, initiator, commitment)
	if err != nil {
		return htlc.Instruction{}, err
	}
	msg := InitiateMsg{
		Participant:    participant,
		Amount:         amount,
		HashCommitment: commitment,
		Deadline:       deadline,
		Mint:           mint,
	}
	return htlc.Instruction{
		ProgramID: programID,
		Accounts:  partyAccounts(initiator, addrs.Escrow, addrs.Vault),
		Data:      append([]byte{byte(TagInitiate)}, msg.Payload()...),
	}, nil
}

// NewRedeemInstruction builds the instruction claiming the escrow for
// participant.
func NewRedeemInstruction(programID, participant, escrow htlc.Pubkey, secret []byte) (htlc.Instruction, error) {
	vault, _, err := VaultAddress(programID, escrow)
	if err != nil {
		return htlc.Instruction{}, err
	}
	if len(secret) > htlc.MaxShortVec {
		return htlc.Instruction{}, errors.Wrap(errors.ErrInput, "secret too long")
	}
	msg := RedeemMsg{Escrow: escrow, Secret: secret}
	return htlc.Instruction{
		ProgramID: programID,
		Accounts:  partyAccounts(participant, escrow, vault),
		Data:      append([]byte{byte(TagRedeem)}, msg.Payload()...),
	}, nil
}

// NewRefundInstruction builds the instruction returning an expired escrow
// to initiator.
func NewRefundInstruction(programID, initiator, escrow htlc.Pubkey) (htlc.Instruction, error) {
	vault, _, err := VaultAddress(programID, escrow)
	if err != nil {
		return htlc.Instruction{}, err
	}
	msg := RefundMsg{Escrow: escrow}
	return htlc.Instruction{
		ProgramID: programID,
		Accounts:  partyAccounts(initiator, escrow, vault),
		Data:      append([]byte{byte(TagRefund)}, msg.Payload()...),
	}, nil
}
