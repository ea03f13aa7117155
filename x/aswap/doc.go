/*
Package aswap implements the on-chain side of a hash time locked atomic swap.

An escrow holds funds of the initiator, locked by the sha256 hash of a
secret and a deadline. Before the deadline the participant can claim the
funds by revealing the secret. From the deadline on only the initiator can
take them back. The revealed secret is published with the transaction so
that the initiator can use it to claim the matching lock on the other
chain.

The algorithm is as follows:
 1. Initiator generates a secret, stores it in a secure place.
 2. Initiator makes a sha256 hash out of the secret.
 3. With this hash initiator sends Initiate. The escrow and the vault are
    created at addresses derived from the initiator and the hash.
 4. Participant sends Redeem with the secret before the deadline.
 5. If the deadline passed, initiator sends Refund.
 6. The escrow record is kept with its final status, so any later attempt
    fails with ErrAlreadySettled (or ErrExpired for a late Redeem of a
    refunded escrow).

The deadlines of both chains must be chosen so that the chain where the
secret is revealed first expires first. Nothing here can check that.
*/
package aswap
