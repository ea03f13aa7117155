/*

Package htlc defines the interfaces shared by the swap program and the
runtime hosting it: account keys and derived addresses, storage,
transactions, handlers, the ledger clock carried in the context, and queries.

Extensions live under x/. The escrow state machine itself is x/aswap.

*/

package htlc
