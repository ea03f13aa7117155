package htlc

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/iov-one/htlc/errors"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32
)

var pdaMarker = []byte("ProgramDerivedAddress")

// CreateProgramAddress derives an address from the seeds and the program id.
// The result must not be a valid ed25519 point, so nobody can hold a private
// key for it and only the program can authorize its use.
func CreateProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, error) {
	if err := validateSeeds(seeds); err != nil {
		return Pubkey{}, err
	}
	pda, ok := deriveAddress(seeds, programID)
	if !ok {
		return Pubkey{}, errors.Wrap(errors.ErrInput, "derived address is on curve")
	}
	return pda, nil
}

// FindProgramAddress searches the bump seed from 255 down and returns the
// first off-curve address together with the bump that produced it.
func FindProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	if err := validateSeeds(withBump[:len(seeds)]); err != nil {
		return Pubkey{}, 0, err
	}
	if len(withBump) > maxSeeds {
		return Pubkey{}, 0, errors.Wrapf(errors.ErrInput, "at most %d seeds", maxSeeds-1)
	}
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		if pda, ok := deriveAddress(withBump, programID); ok {
			return pda, uint8(bump), nil
		}
	}
	return Pubkey{}, 0, errors.Wrap(errors.ErrState, "no viable program address found")
}

// IsOnCurve returns true if the key is a valid compressed ed25519 point.
func IsOnCurve(pk Pubkey) bool {
	_, err := new(edwards25519.Point).SetBytes(pk[:])
	return err == nil
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds) > maxSeeds {
		return errors.Wrapf(errors.ErrInput, "at most %d seeds", maxSeeds)
	}
	for _, seed := range seeds {
		if len(seed) > maxSeedLength {
			return errors.Wrapf(errors.ErrInput, "seed longer than %d bytes", maxSeedLength)
		}
	}
	return nil
}

func deriveAddress(seeds [][]byte, programID Pubkey) (Pubkey, bool) {
	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write(pdaMarker)

	var out Pubkey
	copy(out[:], h.Sum(nil))
	return out, !IsOnCurve(out)
}
