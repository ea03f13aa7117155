package htlc

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/htlc/errors"
	"github.com/mr-tron/base58"
)

// PubkeyLength is the size of an account key in bytes.
const PubkeyLength = 32

// Pubkey identifies an account on the ledger. Keys of users are ed25519
// public keys, program derived addresses are off-curve 32 byte values.
type Pubkey [PubkeyLength]byte

// ParsePubkey accepts a base58 encoded key, or a 64 character hex string
// optionally prefixed with 0x.
func ParsePubkey(s string) (Pubkey, error) {
	var out Pubkey
	s = strings.TrimSpace(s)
	if s == "" {
		return out, errors.Wrap(errors.ErrEmpty, "pubkey")
	}

	if h := strings.TrimPrefix(s, "0x"); len(h) == 2*PubkeyLength {
		if b, err := hex.DecodeString(h); err == nil {
			copy(out[:], b)
			return out, nil
		}
	}

	b, err := base58.Decode(s)
	if err != nil {
		return out, errors.Wrapf(errors.ErrInput, "pubkey %q: %s", s, err)
	}
	return PubkeyFromBytes(b)
}

// MustParsePubkey is ParsePubkey for constants. It panics on bad input.
func MustParsePubkey(s string) Pubkey {
	pk, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// PubkeyFromBytes copies a raw key. The slice must be exactly PubkeyLength
// long.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	var out Pubkey
	if len(b) != PubkeyLength {
		return out, errors.Wrapf(errors.ErrInput, "pubkey must be %d bytes, got %d", PubkeyLength, len(b))
	}
	copy(out[:], b)
	return out, nil
}

// Bytes returns a copy of the key.
func (k Pubkey) Bytes() []byte {
	return append([]byte(nil), k[:]...)
}

// IsZero returns true for the all-zero (default) key.
func (k Pubkey) IsZero() bool {
	return k == Pubkey{}
}

// Equals checks if two keys are the same
func (k Pubkey) Equals(o Pubkey) bool {
	return bytes.Equal(k[:], o[:])
}

// String returns the base58 form of the key.
func (k Pubkey) String() string {
	return base58.Encode(k[:])
}

func (k Pubkey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Pubkey) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode json")
	}
	pk, err := ParsePubkey(enc)
	if err != nil {
		return err
	}
	*k = pk
	return nil
}

// ContainsKey reports whether key is one of keys.
func ContainsKey(keys []Pubkey, key Pubkey) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
