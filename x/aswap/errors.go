package aswap

import "github.com/iov-one/htlc/errors"

// Codes 600-699 are reserved for the swap program.
var (
	// ErrCommitmentReused is returned when an escrow for the same initiator
	// and hash commitment already exists.
	ErrCommitmentReused = errors.Register(601, "commitment reused")

	// ErrDeadlineInPast is returned when a swap is initiated with a
	// deadline that is not in the future.
	ErrDeadlineInPast = errors.Register(602, "deadline in past")

	// ErrAlreadySettled is returned for any transition of a redeemed or
	// refunded escrow.
	ErrAlreadySettled = errors.Register(603, "already settled")

	// ErrNotYetExpired is returned when a refund is attempted before the
	// deadline.
	ErrNotYetExpired = errors.Register(604, "not yet expired")

	// ErrBadSecret is returned when the revealed secret does not hash to
	// the commitment.
	ErrBadSecret = errors.Register(605, "bad secret")
)
