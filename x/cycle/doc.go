/*
Package cycle implements the distribution engine.

A cycle starts when the previous yield was claimed. Once it lasted at least
the configured cycle length, has votes and enough yield to pay every project,
anybody can trigger the distribution. The engine then claims all accrued
yield and splits its balance in halves. The first half is shared equally by
all active projects, the second proportionally to the votes they received.
Finally the membership changes queued during the cycle are applied and the
tally is reset.

Configuration is owned by a single address. The Admin capability returned by
Engine.Admin is the only way to change it, and to queue membership changes.
*/
package cycle
