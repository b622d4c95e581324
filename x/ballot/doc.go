/*
Package ballot implements the vote ledger of a distribution cycle.

Each voter casts a single vector of points per cycle, one value per active
project. Points are normalized and scaled by the voter's power, so the same
vector cast by a bigger holder weighs proportionally more. Weights are
accumulated per project in the tally until the cycle is reset.
*/
package ballot
