/*
Package hashlock implements the hash lock of a swap.

> A Hashlock is a type of encumbrance that restricts the spending of an output
> until a specified piece of data is publicly revealed. Hashlocks have the useful
> property that once any hashlock is opened publicly, any other hashlock secured
> using the same key can also be opened.

https://en.bitcoinwiki.org/wiki/Hashlock

The lock is the sha256 digest of a secret. The same digest must be used on
the counterparty chain, so the hash function cannot be changed.
*/
package hashlock
