/*
Package power computes the voting power of an account.

Voting power is the time integral of an account balance over a range of
block heights: holding one unit for one block contributes one unit of power.
The balance history is read from the asset ledger as a sparse, height ordered
list of checkpoints. Before the first checkpoint the balance is zero.
*/
package power
