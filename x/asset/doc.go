/*
Package asset implements an in-memory, yield bearing asset ledger.

The ledger keeps a balance per account and records a checkpoint each time a
balance changes, so that the balance history can be integrated into voting
power. Yield accrues to a shared pool and is minted to a recipient only when
it is claimed.

The distribution engine treats the ledger as an external collaborator and
depends only on a small interface; this implementation backs the daemon and
the tests.
*/
package asset
