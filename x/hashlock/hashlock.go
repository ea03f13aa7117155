package hashlock

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/iov-one/htlc/errors"
)

// DigestSize is the size of a hash commitment.
const DigestSize = sha256.Size

// Digest is the commitment a secret is locked with.
type Digest [DigestSize]byte

// String returns the hex form of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero returns true for the all-zero digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// ParseDigest reads a hex encoded digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	raw, err := hex.DecodeString(s)
	if err != nil {
		return d, errors.Wrapf(errors.ErrInput, "digest: %s", err)
	}
	if len(raw) != DigestSize {
		return d, errors.Wrapf(errors.ErrInput, "digest must be %d bytes, got %d", DigestSize, len(raw))
	}
	copy(d[:], raw)
	return d, nil
}

// Hash returns the commitment of the secret.
func Hash(secret []byte) Digest {
	return sha256.Sum256(secret)
}

// Verify returns true if the secret opens the lock. The comparison takes
// the same time no matter where the digests differ.
func Verify(secret []byte, commitment Digest) bool {
	got := Hash(secret)
	return subtle.ConstantTimeCompare(got[:], commitment[:]) == 1
}

// ValidateSecret rejects secrets that cannot be used to open a lock,
// before any hashing happens.
func ValidateSecret(secret []byte, maxSize int) error {
	if len(secret) == 0 {
		return errors.Wrap(errors.ErrMalformedInstruction, "empty secret")
	}
	if len(secret) > maxSize {
		return errors.Wrapf(errors.ErrMalformedInstruction, "secret longer than %d bytes", maxSize)
	}
	return nil
}
