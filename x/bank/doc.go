/*
Package bank keeps the balances of the ledger and provides the primitive that
moves them.

A balance is identified by the pair (mint, owner). The all-zero mint is the
native asset of the ledger, any other mint names a token. Balances are
stored as little endian u64 values under "bank:" + mint + owner; a zero
balance is not stored at all.

Other extensions move funds through the Controller. Owners that are program
derived addresses (see htlc.FindProgramAddress) have no private key, so only
the extension that derived them ever moves their funds.
*/
package bank
